package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/pders01/pickr/internal/debuglog"
	"github.com/pders01/pickr/internal/storage"
)

const seededKey = "seeded_at"

// Seed writes Defaults into an empty store the first time it is opened.
// A store that was seeded once is left alone even if later emptied.
func Seed(store *storage.Store) (bool, error) {
	if _, err := store.GetMeta(seededKey); err == nil {
		return false, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	n, err := store.Count()
	if err != nil {
		return false, fmt.Errorf("counting options: %w", err)
	}
	seeded := false
	if n == 0 {
		if err := store.SaveOptions(Defaults(), storage.OriginDefault); err != nil {
			return false, fmt.Errorf("seeding defaults: %w", err)
		}
		debuglog.Infof("Seeded catalog with %d default options", len(Defaults()))
		seeded = true
	}
	if err := store.SetMeta(seededKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return seeded, err
	}
	return seeded, nil
}
