package curve

import (
	"fmt"
	"math"
	"time"
)

// Segment partitions the timeline into slices bounded by strict local minima of
// the smoothed average. Peaks are tracked on the unsmoothed average so the
// reported magnitude is the less filtered value while the slice shape follows
// the smoothed curve.
//
// Every call returns at least one slice, and the slices cover [0, N-1] with
// adjacent slices sharing their boundary index.
func Segment(smooth, avg7 []float64, dates []time.Time) ([]Slice, error) {
	n := len(smooth)
	if n < 2 || len(avg7) != n || len(dates) != n {
		return nil, fmt.Errorf("segment %d/%d/%d points: %w", n, len(avg7), len(dates), ErrInsufficientData)
	}

	var result []Slice
	current := Slice{Start: 0}
	active := false // seen a defined non-zero day in the current slice
	maxSoFar := 0.0

	for i := 1; i < n; i++ {
		curr, ok := at(smooth, i)
		if !ok || curr == 0 {
			if !active {
				current.ActiveStart = i + 1
			}
			continue
		}
		active = true

		if raw, ok := at(avg7, i); ok && raw > maxSoFar {
			maxSoFar = raw
			current.Peak = &Peak{Index: i, Date: dates[i], Value: math.Round(raw)}
		}

		if isLocalMinimum(smooth, i) {
			current.End = i
			result = append(result, current)
			current = Slice{Start: i, ActiveStart: i}
			maxSoFar = 0
		}
	}

	if !active || current.ActiveStart >= n-1 {
		current.ActiveStart = current.Start
	}
	current.End = n - 1
	result = append(result, current)

	return result, nil
}

// isLocalMinimum reports whether xs[i] is strictly lower than both neighbours.
// An undefined or missing neighbour never forms a minimum, so the last index
// cannot close a slice.
func isLocalMinimum(xs []float64, i int) bool {
	curr, ok := at(xs, i)
	if !ok {
		return false
	}
	prev, ok := at(xs, i-1)
	if !ok {
		return false
	}
	next, ok := at(xs, i+1)
	if !ok {
		return false
	}
	return prev > curr && curr < next
}
