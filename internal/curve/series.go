package curve

import (
	"fmt"
	"time"
)

// warmup is the number of days at each end without a full averaging window.
const warmup = 3

// Build derives daily deltas, the 7-day average and its smoothed version from
// a jurisdiction's cumulative rows. Rows must be in date order; decreasing
// cumulative values produce negative deltas and are kept as is.
func Build(rows []TimePoint, smoothFactor float64) (DerivedSeries, error) {
	if len(rows) == 0 {
		return DerivedSeries{}, fmt.Errorf("build series: %w", ErrEmptyInput)
	}

	n := len(rows)
	dates := make([]time.Time, n)
	for i, r := range rows {
		dates[i] = r.Date
	}

	delta := DailyDelta(rows)
	avg := SevenDayAverage(delta)

	return DerivedSeries{
		Dates:      dates,
		Delta:      delta,
		Avg7:       avg,
		Avg7Smooth: SmoothAverage(avg, smoothFactor),
	}, nil
}

// DailyDelta returns the day-over-day difference of the cumulative values.
// The first day has no predecessor and is 0.
func DailyDelta(rows []TimePoint) []float64 {
	result := make([]float64, len(rows))
	for i := 1; i < len(rows); i++ {
		result[i] = rows[i].Cumulative - rows[i-1].Cumulative
	}
	return result
}

// SevenDayAverage averages delta[i-3..i+2] for every index with a full window.
// The window is six entries wide; downstream peak values are calibrated
// against it.
func SevenDayAverage(delta []float64) []float64 {
	result := filled(len(delta))
	for i := warmup; i < len(delta)-warmup; i++ {
		sum := 0.0
		for _, v := range delta[i-warmup : i+warmup] {
			sum += v
		}
		result[i] = sum / float64(2*warmup)
	}
	return result
}

// SmoothAverage smooths the defined middle of avg and re-pads it with
// sentinels so it stays index-aligned with the input.
func SmoothAverage(avg []float64, smoothFactor float64) []float64 {
	result := filled(len(avg))
	if len(avg) <= 2*warmup {
		return result
	}
	smoothed := GaussianSmooth(avg[warmup:len(avg)-warmup], smoothFactor, KernelHalfWidth, KernelPasses)
	copy(result[warmup:], smoothed)
	return result
}

func filled(n int) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = sentinel()
	}
	return result
}
