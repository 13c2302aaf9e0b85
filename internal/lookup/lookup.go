// Package lookup provides the option sources behind the async combobox.
// Every source's Lookup method satisfies combobox.LookupFunc.
package lookup

import (
	"context"
	"fmt"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/config"
	"github.com/pders01/pickr/internal/debuglog"
	"github.com/pders01/pickr/internal/validation"
)

// Source answers queries against some option catalog.
type Source interface {
	Lookup(ctx context.Context, query string) ([]combobox.Option, error)
	Close() error
}

// CatalogListener is implemented by sources that mirror the local catalog
// and need to hear about changes to it.
type CatalogListener interface {
	SetOptions(options []combobox.Option) error
}

// Stater reports how many documents a source holds.
type Stater interface {
	DocCount() (int, error)
}

// New builds the source named by cfg.Search.Backend, seeded with options
// where the backend mirrors the local catalog.
func New(cfg *config.Config, options []combobox.Option) (Source, error) {
	sc := cfg.Search
	debuglog.Infof("Using %s lookup backend", sc.Backend)

	switch sc.Backend {
	case config.BackendSimulated, "":
		return NewSimulated(options, sc.SimulatedLatency), nil

	case config.BackendIndex:
		var (
			idx *Index
			err error
		)
		if sc.IndexPath == "" {
			idx, err = NewMemIndex(sc.Limit)
		} else {
			idx, err = OpenIndex(sc.IndexPath, sc.Limit)
		}
		if err != nil {
			return nil, fmt.Errorf("opening lookup index: %w", err)
		}
		if err := idx.SetOptions(options); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("indexing catalog: %w", err)
		}
		return idx, nil

	case config.BackendHTTP:
		validator := validation.NewURLValidator()
		if sc.AllowLocal {
			validator = validation.NewPermissiveURLValidator()
		}
		return NewHTTP(sc.RemoteURL, HTTPOptions{
			Timeout:   sc.RemoteTimeout,
			Rate:      sc.RemoteRate,
			Limit:     sc.Limit,
			UserAgent: cfg.Catalog.UserAgent,
			Validator: validator,
		})
	}
	return nil, fmt.Errorf("unknown lookup backend %q", sc.Backend)
}
