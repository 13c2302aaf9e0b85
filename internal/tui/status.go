package tui

import (
	"fmt"
	"strings"

	"github.com/pders01/pickr/internal/combobox"
)

// StatusKind indicates severity for status messages.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

const (
	MsgReady   = "Ready"
	MsgSaving  = "Saving…"
	MsgCleared = "cleared"
)

func MsgSelected(source string, opt *combobox.Option) string {
	if opt == nil {
		return fmt.Sprintf("%s: %s", source, MsgCleared)
	}
	return fmt.Sprintf("%s: %s (%s)", source, opt.Label, opt.Value)
}

func MsgMultiChanged(source string, options []combobox.Option) string {
	if len(options) == 0 {
		return fmt.Sprintf("%s: %s", source, MsgCleared)
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	return fmt.Sprintf("%s: %s", source, strings.Join(labels, ", "))
}

func MsgCreated(opt combobox.Option, total int) string {
	return fmt.Sprintf("Created '%s' as %s • %d options", opt.Label, opt.Value, total)
}
