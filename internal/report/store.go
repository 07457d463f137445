package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"epicurve/internal/curve"

	"github.com/rs/zerolog/log"
)

// SliceRecord is the persisted summary of one jurisdiction's analysis.
type SliceRecord struct {
	Key          string        `json:"key"`
	Name         string        `json:"name"`
	SmoothFactor float64       `json:"smooth_factor"`
	YMax         float64       `json:"y_max"`
	FirstDate    time.Time     `json:"first_date"`
	Slices       []curve.Slice `json:"slices"`
}

// NewSliceRecord summarizes an analysis for persistence.
func NewSliceRecord(name string, a curve.Analysis) SliceRecord {
	var first time.Time
	if a.Series.Len() > 0 {
		first = a.Series.Dates[0]
	}
	return SliceRecord{
		Key:          a.Key,
		Name:         name,
		SmoothFactor: a.SmoothFactor,
		YMax:         a.YMax,
		FirstDate:    first,
		Slices:       a.Slices,
	}
}

// DayDate returns the calendar day of a series index.
func (r SliceRecord) DayDate(i int) time.Time {
	return r.FirstDate.AddDate(0, 0, i)
}

// Store keeps one slices.json per jurisdiction under a folder directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at a folder's output directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key, "slices.json")
}

// Save persists a record, replacing any previous one atomically.
func (s *Store) Save(rec SliceRecord) error {
	path := s.path(rec.Key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create slice directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slices: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp slice file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename slice file: %w", err)
	}

	log.Debug().Str("key", rec.Key).Int("slices", len(rec.Slices)).Msg("Slices saved")
	return nil
}

// Load reads a previously saved record.
func (s *Store) Load(key string) (*SliceRecord, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read slices for %s: %w", key, err)
	}
	var rec SliceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode slices for %s: %w", key, err)
	}
	return &rec, nil
}
