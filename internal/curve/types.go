package curve

import (
	"math"
	"time"
)

// TimePoint is one day of a cumulative series as produced by the data source.
type TimePoint struct {
	Index      int       `json:"index"`
	Date       time.Time `json:"date"`
	Cumulative float64   `json:"cumulative"`
}

// DerivedSeries holds the day-aligned arrays derived from a jurisdiction's rows.
// Avg7 and Avg7Smooth carry NaN in positions without a full window; use Defined
// to test them.
type DerivedSeries struct {
	Dates      []time.Time
	Delta      []float64
	Avg7       []float64
	Avg7Smooth []float64
}

// Len returns the number of days in the series.
func (s DerivedSeries) Len() int {
	return len(s.Dates)
}

// Peak marks the highest 7-day average inside a slice.
type Peak struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Value float64   `json:"value"` // rounded
}

// Slice is one contiguous rise-then-fall segment of the smoothed average.
// Adjacent slices share their boundary index.
type Slice struct {
	Start       int   `json:"start"`
	End         int   `json:"end"`
	ActiveStart int   `json:"active_start"` // first index after leading sentinel/zero days
	Peak        *Peak `json:"peak,omitempty"`
}

// HasPeak reports whether any non-zero day was seen in the slice.
func (s Slice) HasPeak() bool {
	return s.Peak != nil
}

// Defined reports whether v is a real value rather than the window sentinel.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// Nullable converts sentinel entries to nil, for encoders that cannot
// represent NaN.
func Nullable(xs []float64) []*float64 {
	result := make([]*float64, len(xs))
	for i, v := range xs {
		if Defined(v) {
			result[i] = &v
		}
	}
	return result
}

func sentinel() float64 {
	return math.NaN()
}

// at returns xs[i] when i is in range and the value is defined.
func at(xs []float64, i int) (float64, bool) {
	if i < 0 || i >= len(xs) {
		return 0, false
	}
	if !Defined(xs[i]) {
		return 0, false
	}
	return xs[i], true
}
