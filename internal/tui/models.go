package tui

type View int

const (
	ViewWidgets View = iota
	ViewHelp
)

// Section labels, top to bottom.
const (
	LabelStandard     = "Choose a language or framework"
	LabelMulti        = "Choose multiple languages or frameworks"
	LabelAutocomplete = "Search a language or framework"
	LabelCreatable    = "Create or select a language or framework"
	LabelAsync        = "Search remote language or framework"
)
