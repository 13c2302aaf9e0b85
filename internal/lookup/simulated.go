package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/pders01/pickr/internal/combobox"
)

// Simulated stands in for a remote service: it waits out a fixed latency
// and then filters an in-memory catalog by case-insensitive substring.
type Simulated struct {
	mu      sync.RWMutex
	options []combobox.Option
	latency time.Duration
}

func NewSimulated(options []combobox.Option, latency time.Duration) *Simulated {
	s := &Simulated{latency: latency}
	_ = s.SetOptions(options)
	return s
}

func (s *Simulated) SetOptions(options []combobox.Option) error {
	s.mu.Lock()
	s.options = append([]combobox.Option(nil), options...)
	s.mu.Unlock()
	return nil
}

func (s *Simulated) Lookup(ctx context.Context, query string) ([]combobox.Option, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return combobox.FilterOptions(s.options, query), nil
}

func (s *Simulated) DocCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.options), nil
}

func (s *Simulated) Close() error { return nil }
