package curve

import "math"

// Smoothing kernel parameters. The half-width matches the 3-day warm-up on
// either side of the 7-day average.
const (
	KernelHalfWidth = 3
	KernelPasses    = 1
)

// GaussianSmooth applies a Gaussian-weighted moving average with bandwidth sigma
// (in days) and the given half-width. Out-of-range neighbours take the value of
// the nearest end, so a monotonic run stays monotonic. A non-positive sigma
// returns a copy of the input.
func GaussianSmooth(values []float64, sigma float64, halfWidth, passes int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if len(values) == 0 || sigma <= 0 || math.IsNaN(sigma) || halfWidth <= 0 {
		return out
	}

	weights := gaussianWeights(sigma, halfWidth)
	buf := make([]float64, len(values))
	for p := 0; p < passes; p++ {
		for j := range out {
			sum := 0.0
			for k := -halfWidth; k <= halfWidth; k++ {
				sum += weights[k+halfWidth] * out[clampIndex(j+k, len(out))]
			}
			buf[j] = sum
		}
		out, buf = buf, out
	}
	return out
}

// gaussianWeights returns normalized weights for offsets -halfWidth..halfWidth.
func gaussianWeights(sigma float64, halfWidth int) []float64 {
	weights := make([]float64, 2*halfWidth+1)
	total := 0.0
	for k := -halfWidth; k <= halfWidth; k++ {
		w := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		weights[k+halfWidth] = w
		total += w
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
