package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/debuglog"
	"github.com/pders01/pickr/internal/lookup"
	"github.com/pders01/pickr/internal/storage"
)

type optionsChangedMsg struct {
	created combobox.Option
	options []combobox.Option
}

type helpRenderedMsg struct {
	content string
}

type errorMsg struct {
	err error
}

// persistCreated stores a created option and reloads the catalog. Sources
// that mirror the catalog are refreshed too.
func (a *App) persistCreated(opt combobox.Option) tea.Cmd {
	store := a.store
	source := a.source
	return func() tea.Msg {
		if err := store.SaveOption(opt, storage.OriginCreated); err != nil {
			return errorMsg{wrapErr("saving option", err)}
		}
		options, err := store.AllOptions()
		if err != nil {
			return errorMsg{wrapErr("loading catalog", err)}
		}
		if l, ok := source.(lookup.CatalogListener); ok {
			if err := l.SetOptions(options); err != nil {
				return errorMsg{wrapErr("refreshing lookup", err)}
			}
			debuglog.Debugf("Refreshed lookup source with %d options", len(options))
		}
		return optionsChangedMsg{created: opt, options: options}
	}
}

func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
