package storage

import (
	"time"

	"github.com/pders01/pickr/internal/combobox"
)

// Origin records how an option entered the catalog.
type Origin string

const (
	OriginDefault  Origin = "default"
	OriginCreated  Origin = "created"
	OriginImported Origin = "imported"
)

// Record is the persisted form of a catalog option.
type Record struct {
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	Origin    Origin    `json:"origin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r Record) Option() combobox.Option {
	return combobox.Option{Value: r.Value, Label: r.Label}
}
