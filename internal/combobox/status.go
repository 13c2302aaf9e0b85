package combobox

import "fmt"

// StatusKind is the coarse state of a search controller as seen by the
// presentation layer.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusBelowThreshold
	StatusSearching
	StatusError
	StatusEmpty
	StatusPopulated
)

func (k StatusKind) String() string {
	switch k {
	case StatusIdle:
		return "idle"
	case StatusBelowThreshold:
		return "below-threshold"
	case StatusSearching:
		return "searching"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	case StatusPopulated:
		return "populated"
	default:
		return "unknown"
	}
}

// Status is a derived projection; it is recomputed on every read and never
// stored. Message is only set for StatusError.
type Status struct {
	Kind    StatusKind
	Message string
}

// Canonical short status messages.
const (
	MsgStartTyping = "Start typing to search…"
	MsgSearching   = "Searching…"
	MsgTryAnother  = "Try another search term."
	MsgNoOptions   = "No options found."
	MsgNoResults   = "No results found."
)

func MsgKeepTyping(minChars int) string {
	if minChars == 1 {
		return "Type at least 1 character…"
	}
	return fmt.Sprintf("Type at least %d characters…", minChars)
}

func MsgNoResultsFor(query string) string {
	return fmt.Sprintf("No results for %q.", query)
}

// statusInputs is everything status derivation depends on.
type statusInputs struct {
	query        string
	hasSelection bool
	searching    bool
	errMsg       string
	failed       bool
	fetched      int
	settled      bool // a lookup for query has completed
	minChars     int
}

// deriveStatus applies the precedence Searching, Error, Idle,
// BelowThreshold, Empty, Populated. First match wins. Empty needs a
// completed lookup for the current query; before that the list is simply
// Populated with whatever it holds.
func deriveStatus(in statusInputs) Status {
	switch {
	case in.searching:
		return Status{Kind: StatusSearching}
	case in.failed:
		return Status{Kind: StatusError, Message: in.errMsg}
	case in.query == "" && !in.hasSelection:
		return Status{Kind: StatusIdle}
	case len([]rune(in.query)) < in.minChars:
		return Status{Kind: StatusBelowThreshold}
	case in.settled && in.fetched == 0:
		return Status{Kind: StatusEmpty}
	default:
		return Status{Kind: StatusPopulated}
	}
}

// Text renders the status line for query. Populated and a selection with
// no query render as the empty string.
func (s Status) Text(query string, minChars int) string {
	switch s.Kind {
	case StatusSearching:
		return MsgSearching
	case StatusError:
		return s.Message
	case StatusIdle:
		return MsgStartTyping
	case StatusBelowThreshold:
		if query == "" {
			return ""
		}
		return MsgKeepTyping(minChars)
	case StatusEmpty:
		return MsgNoResultsFor(query)
	default:
		return ""
	}
}
