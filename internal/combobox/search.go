package combobox

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/pickr/internal/debuglog"
)

// MsgLookupFailed is shown when a lookup fails without a usable message.
const MsgLookupFailed = "Error loading options"

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Reason tells SetText where a text change came from.
type Reason int

const (
	// ReasonTyped is a keystroke from the user.
	ReasonTyped Reason = iota
	// ReasonItemPicked is text written back after an option was picked.
	ReasonItemPicked
)

func (r Reason) String() string {
	if r == ReasonItemPicked {
		return "item-picked"
	}
	return "typed"
}

// LookupFunc resolves a query to options. It runs off the update loop and
// may fail or finish in any order; ctx is cancelled once its result can no
// longer be used.
type LookupFunc func(ctx context.Context, query string) ([]Option, error)

// SearchConfig holds the recognised controller options.
type SearchConfig struct {
	Debounce    time.Duration
	MinChars    int
	Placeholder string
	Disabled    bool
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Debounce: 300 * time.Millisecond,
		MinChars: 1,
	}
}

type debounceMsg struct {
	id  int
	seq uint64
}

type lookupDoneMsg struct {
	id      int
	token   uint64
	query   string
	options []Option
	err     error
}

// Snapshot is the projection handed to the presentation layer.
type Snapshot struct {
	Status    Status
	Options   []Option
	Selection *Option
	Text      string
}

// Search turns text changes into debounced lookups and keeps its state
// consistent with the most recent input. All methods must be called from
// the Bubble Tea update loop; lookups run in commands and report back
// through Update.
type Search struct {
	id     int
	lookup LookupFunc
	cfg    SearchConfig

	text      string
	selection *Option
	fetched   []Option
	// fetchedFor is the query the fetched list answers; settled is false
	// until a lookup has completed since the last reset.
	fetchedFor string
	settled    bool
	failed     bool
	errMsg    string

	// timerSeq identifies the only debounce tick allowed to fire.
	timerSeq     uint64
	timerPending bool

	// live is the token of the only lookup whose result may be applied;
	// zero means none.
	tokens uint64
	live   uint64
	cancel context.CancelFunc

	closed bool
	log    *debuglog.FieldLogger
}

func NewSearch(lookup LookupFunc, cfg SearchConfig) *Search {
	if cfg.MinChars < 0 {
		cfg.MinChars = 0
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	id := nextID()
	return &Search{
		id:     id,
		lookup: lookup,
		cfg:    cfg,
		log:    debuglog.WithFields(map[string]interface{}{"combobox": id}),
	}
}

func (s *Search) ID() int { return s.id }

func (s *Search) Config() SearchConfig { return s.cfg }

// SetDisabled toggles the disabled guard. Disabling drops any pending
// timer and in-flight lookup.
func (s *Search) SetDisabled(disabled bool) {
	if disabled {
		s.cancelTimer()
		s.invalidate()
	}
	s.cfg.Disabled = disabled
}

func (s *Search) ignoring() bool { return s.closed || s.cfg.Disabled }

// SetText records a text change. Typed text either clears state right away
// (empty or below the threshold) or schedules a debounced lookup. Text
// written back after a pick never schedules one.
func (s *Search) SetText(text string, reason Reason) tea.Cmd {
	if s.ignoring() {
		return nil
	}
	s.text = text
	s.cancelTimer()
	s.invalidate()

	if reason == ReasonItemPicked {
		return nil
	}

	query := s.Query()
	if query == "" || len([]rune(query)) < s.cfg.MinChars {
		s.clearFetched()
		s.clearError()
		return nil
	}

	s.clearError()
	s.timerSeq++
	s.timerPending = true
	id, seq := s.id, s.timerSeq
	s.log.Debugf("scheduled lookup for %q in %s (seq %d)", query, s.cfg.Debounce, seq)

	if s.cfg.Debounce == 0 {
		return func() tea.Msg { return debounceMsg{id: id, seq: seq} }
	}
	return tea.Tick(s.cfg.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id, seq: seq}
	})
}

// Select replaces the selection. A non-nil option also becomes the input
// text without triggering a lookup; nil clears selection, text, options
// and error.
func (s *Search) Select(opt *Option) {
	if s.ignoring() {
		return
	}
	s.cancelTimer()
	s.invalidate()
	s.clearError()

	if opt == nil {
		s.selection = nil
		s.text = ""
		s.clearFetched()
		return
	}
	sel := *opt
	s.selection = &sel
	s.text = sel.Label
}

// CloseDropdown collapses the fetched options to the selection, if any, so
// the list re-opens showing only the chosen item.
func (s *Search) CloseDropdown() {
	if s.ignoring() || s.selection == nil {
		return
	}
	s.fetched = []Option{*s.selection}
}

// Update consumes the controller's own debounce and lookup messages.
// Messages addressed to other controllers are ignored.
func (s *Search) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != s.id || s.ignoring() {
			return nil
		}
		if !s.timerPending || msg.seq != s.timerSeq {
			return nil
		}
		s.timerPending = false
		return s.dispatch()

	case lookupDoneMsg:
		if msg.id != s.id {
			return nil
		}
		s.resolve(msg)
	}
	return nil
}

// Close tears the controller down. Pending timers never fire and any
// in-flight lookup is discarded when it settles. Safe to call repeatedly.
func (s *Search) Close() {
	s.cancelTimer()
	s.invalidate()
	s.closed = true
}

func (s *Search) dispatch() tea.Cmd {
	s.tokens++
	token := s.tokens
	s.live = token

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	id, query, lookup := s.id, s.Query(), s.lookup
	s.log.Debugf("dispatching lookup %d for %q", token, query)

	return func() tea.Msg {
		options, err := runLookup(ctx, lookup, query)
		return lookupDoneMsg{id: id, token: token, query: query, options: options, err: err}
	}
}

func (s *Search) resolve(msg lookupDoneMsg) {
	if msg.token == 0 || msg.token != s.live {
		s.log.Debugf("discarding stale lookup %d for %q", msg.token, msg.query)
		return
	}
	s.live = 0
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if msg.err != nil {
		s.log.Warnf("lookup %d for %q failed: %v", msg.token, msg.query, msg.err)
		s.failed = true
		s.errMsg = errorText(msg.err)
		s.clearFetched()
		return
	}

	s.log.Debugf("lookup %d for %q returned %d options", msg.token, msg.query, len(msg.options))
	s.fetched = slices.Clone(msg.options)
	s.fetchedFor = msg.query
	s.settled = true
	s.clearError()
}

// cancelTimer is idempotent.
func (s *Search) cancelTimer() {
	if s.timerPending {
		s.timerSeq++
		s.timerPending = false
	}
}

// invalidate is idempotent.
func (s *Search) invalidate() {
	s.live = 0
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Search) clearFetched() {
	s.fetched = nil
	s.fetchedFor = ""
	s.settled = false
}

func (s *Search) clearError() {
	s.failed = false
	s.errMsg = ""
}

// Text is the raw input text.
func (s *Search) Text() string { return s.text }

// Query is the trimmed input text that lookups are keyed on.
func (s *Search) Query() string { return strings.TrimSpace(s.text) }

// Selection returns a copy of the selection, or nil.
func (s *Search) Selection() *Option {
	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// Pending reports whether a debounce timer is waiting to fire.
func (s *Search) Pending() bool { return s.timerPending }

// Searching reports whether a lookup is in flight.
func (s *Search) Searching() bool { return s.live != 0 }

// Options is the last fetched list with the selection appended when the
// lookup did not return it.
func (s *Search) Options() []Option {
	return slices.Clone(MergeSelection(s.fetched, s.selection))
}

func (s *Search) Status() Status {
	return deriveStatus(statusInputs{
		query:        s.Query(),
		hasSelection: s.selection != nil,
		searching:    s.Searching(),
		failed:       s.failed,
		errMsg:       s.errMsg,
		fetched:      len(s.fetched),
		settled:      s.settled && s.fetchedFor == s.Query(),
		minChars:     s.cfg.MinChars,
	})
}

func (s *Search) Snapshot() Snapshot {
	return Snapshot{
		Status:    s.Status(),
		Options:   s.Options(),
		Selection: s.Selection(),
		Text:      s.text,
	}
}

var errNoLookup = errors.New("no lookup function configured")

// runLookup calls lookup, converting a panic into an error.
func runLookup(ctx context.Context, lookup LookupFunc, query string) (options []Option, err error) {
	if lookup == nil {
		return nil, errNoLookup
	}
	defer func() {
		if r := recover(); r != nil {
			options = nil
			err = fmt.Errorf("lookup panicked: %v", r)
		}
	}()
	return lookup(ctx, query)
}

func errorText(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgLookupFailed
}
