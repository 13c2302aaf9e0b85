package combobox

import (
	"strings"
	"unicode"
)

// Option is a selectable item. Two options are the same item when their
// Values match; the Label is display text only.
type Option struct {
	Value string `json:"value" toml:"value"`
	Label string `json:"label" toml:"label"`
}

// Same reports whether o and other identify the same item.
func (o Option) Same(other Option) bool { return o.Value == other.Value }

// IndexOf returns the position of the option whose Value matches value, or -1.
func IndexOf(options []Option, value string) int {
	for i, o := range options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// MergeSelection returns options with sel appended when it is not already a
// member. The input slice is never modified.
func MergeSelection(options []Option, sel *Option) []Option {
	if sel == nil || IndexOf(options, sel.Value) >= 0 {
		return options
	}
	merged := make([]Option, 0, len(options)+1)
	merged = append(merged, options...)
	return append(merged, *sel)
}

// FilterOptions returns the options whose label contains query,
// case-insensitively. An empty query matches everything.
func FilterOptions(options []Option, query string) []Option {
	q := strings.ToLower(query)
	out := make([]Option, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Label), q) {
			out = append(out, o)
		}
	}
	return out
}

// ContainsLabel reports whether any option carries label, ignoring case.
func ContainsLabel(options []Option, label string) bool {
	for _, o := range options {
		if strings.EqualFold(o.Label, label) {
			return true
		}
	}
	return false
}

// Slugify derives an option value from a free-form label: lowercased, with
// every run of whitespace replaced by a single dash.
func Slugify(label string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteRune('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
