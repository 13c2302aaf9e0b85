package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pders01/pickr/internal/combobox"
)

var (
	optionsBucket = []byte("options")
	metaBucket    = []byte("metadata")
)

// ErrNotFound is returned when a key is absent.
var ErrNotFound = errors.New("not found")

const defaultTimeout = 1 * time.Second

type Store struct {
	db  *bolt.DB
	now func() time.Time
}

func NewStore(dbPath string) (*Store, error) {
	return NewStoreWithTimeout(dbPath, defaultTimeout)
}

// NewStoreWithTimeout opens the database, waiting at most timeout for the
// file lock held by another process.
func NewStoreWithTimeout(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{optionsBucket, metaBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.db.Path() }

func (s *Store) SaveOption(opt combobox.Option, origin Origin) error {
	return s.SaveOptions([]combobox.Option{opt}, origin)
}

// SaveOptions upserts options keyed by value. Existing records keep their
// creation time and origin; only the label is updated.
func (s *Store) SaveOptions(options []combobox.Option, origin Origin) error {
	now := s.now()
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(optionsBucket)
		for _, opt := range options {
			if strings.TrimSpace(opt.Value) == "" {
				return fmt.Errorf("option %q has an empty value", opt.Label)
			}
			rec := Record{
				Value:     opt.Value,
				Label:     opt.Label,
				Origin:    origin,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if data := b.Get([]byte(opt.Value)); data != nil {
				var prev Record
				if err := json.Unmarshal(data, &prev); err == nil {
					rec.Origin = prev.Origin
					rec.CreatedAt = prev.CreatedAt
				}
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(opt.Value), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) GetOption(value string) (*Record, error) {
	var rec Record
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(optionsBucket).Get([]byte(value))
		if data == nil {
			return fmt.Errorf("option %q: %w", value, ErrNotFound)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// AllRecords returns every record sorted by label, case-insensitively,
// then by value.
func (s *Store) AllRecords() ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(optionsBucket).ForEach(func(_ []byte, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
			return nil
		})
	})
	sort.SliceStable(records, func(i, j int) bool {
		li, lj := strings.ToLower(records[i].Label), strings.ToLower(records[j].Label)
		if li != lj {
			return li < lj
		}
		return records[i].Value < records[j].Value
	})
	return records, err
}

// AllOptions returns the catalog in AllRecords order.
func (s *Store) AllOptions() ([]combobox.Option, error) {
	records, err := s.AllRecords()
	if err != nil {
		return nil, err
	}
	options := make([]combobox.Option, len(records))
	for i, r := range records {
		options[i] = r.Option()
	}
	return options, nil
}

func (s *Store) DeleteOption(value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(optionsBucket)
		if b.Get([]byte(value)) == nil {
			return fmt.Errorf("option %q: %w", value, ErrNotFound)
		}
		return b.Delete([]byte(value))
	})
}

func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(optionsBucket).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(metaBucket).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("metadata %q: %w", key, ErrNotFound)
		}
		value = string(data)
		return nil
	})
	return value, err
}

func (s *Store) SetMeta(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(metaBucket).Put([]byte(key), []byte(value))
	})
}
