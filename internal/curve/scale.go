package curve

import "math"

// DefaultYMax is used when the series has nothing to scale against.
const DefaultYMax = 100

// yHeadroom leaves space above the highest average for peak labels.
const yHeadroom = 1.1

// Overrides maps jurisdiction keys to manually chosen values. It is built once
// from configuration and only read afterwards.
type Overrides map[string]float64

// Lookup returns the override for key, if any.
func (o Overrides) Lookup(key string) (float64, bool) {
	if o == nil {
		return 0, false
	}
	v, ok := o[key]
	return v, ok
}

// ComputeYMax returns the chart's y-axis maximum for a 7-day average. A
// configured override wins; otherwise the highest defined value plus headroom
// is rounded up to two significant digits.
func ComputeYMax(avg7 []float64, key string, overrides Overrides) float64 {
	if v, ok := overrides.Lookup(key); ok {
		return v
	}

	peak := 0.0
	for _, v := range avg7 {
		if Defined(v) && v > peak {
			peak = v
		}
	}
	peak *= yHeadroom

	magnitude := math.Floor(math.Log10(peak))
	base := math.Pow(10, magnitude-1)
	result := math.Ceil(peak/base) * base

	if math.IsNaN(result) || math.IsInf(result, 0) || result <= 0 {
		return DefaultYMax
	}
	return result
}
