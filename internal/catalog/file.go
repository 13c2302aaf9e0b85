package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/pickr/internal/combobox"
)

// file is the on-disk catalog layout:
//
//	[[options]]
//	value = "python"
//	label = "Python"
type file struct {
	Options []combobox.Option `toml:"options"`
}

// LoadFile reads a TOML catalog. Entries without a value get one derived
// from their label; entries without either are dropped, as are repeated
// values.
func LoadFile(path string) ([]combobox.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return Normalize(f.Options), nil
}

// SaveFile writes options as a TOML catalog, creating parent directories.
func SaveFile(path string, options []combobox.Option) error {
	data, err := toml.Marshal(file{Options: options})
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Normalize trims options, fills missing values and labels, and drops
// blanks and duplicate values, keeping the first occurrence.
func Normalize(options []combobox.Option) []combobox.Option {
	seen := make(map[string]bool, len(options))
	out := make([]combobox.Option, 0, len(options))
	for _, o := range options {
		o.Label = strings.TrimSpace(o.Label)
		o.Value = strings.TrimSpace(o.Value)
		if o.Value == "" {
			o.Value = combobox.Slugify(o.Label)
		}
		if o.Value == "" {
			continue
		}
		if o.Label == "" {
			o.Label = o.Value
		}
		if seen[o.Value] {
			continue
		}
		seen[o.Value] = true
		out = append(out, o)
	}
	return out
}
