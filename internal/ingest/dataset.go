package ingest

import (
	"slices"

	"epicurve/internal/curve"
)

// Dataset holds the rows of every jurisdiction in a file, keyed by normalized
// jurisdiction key and kept in first-seen order.
type Dataset struct {
	keys []string
	rows map[string][]curve.TimePoint
}

// NewDataset creates an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{rows: make(map[string][]curve.TimePoint)}
}

// Append adds a day to the jurisdiction's series, assigning its index.
func (d *Dataset) Append(key string, p curve.TimePoint) {
	existing, ok := d.rows[key]
	if !ok {
		d.keys = append(d.keys, key)
	}
	p.Index = len(existing)
	d.rows[key] = append(existing, p)
}

// Keys returns the jurisdiction keys in the order they first appeared.
func (d *Dataset) Keys() []string {
	return slices.Clone(d.keys)
}

// Rows returns the series of one jurisdiction.
func (d *Dataset) Rows(key string) ([]curve.TimePoint, bool) {
	r, ok := d.rows[key]
	return r, ok
}

// Len returns the number of jurisdictions.
func (d *Dataset) Len() int {
	return len(d.keys)
}

// Filter returns a Dataset restricted to keys, preserving the original order.
// An empty filter returns d unchanged.
func (d *Dataset) Filter(keys []string) *Dataset {
	if len(keys) == 0 {
		return d
	}
	result := NewDataset()
	for _, k := range d.keys {
		if slices.Contains(keys, k) {
			result.keys = append(result.keys, k)
			result.rows[k] = d.rows[k]
		}
	}
	return result
}
