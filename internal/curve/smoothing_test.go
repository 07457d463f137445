package curve

import (
	"math"
	"testing"
)

func TestGaussianWeights(t *testing.T) {
	w := gaussianWeights(2, 3)
	if len(w) != 7 {
		t.Fatalf("expected 7 weights, got %d", len(w))
	}
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("weights sum to %v, want 1", sum)
	}
	for k := 0; k < 3; k++ {
		if w[k] != w[6-k] {
			t.Errorf("weights not symmetric at %d", k)
		}
		if w[k] >= w[k+1] {
			t.Errorf("weights not increasing towards the centre at %d", k)
		}
	}
}

func TestGaussianSmooth(t *testing.T) {
	t.Run("ConstantUnchanged", func(t *testing.T) {
		got := GaussianSmooth([]float64{4, 4, 4, 4, 4}, 2, 3, 1)
		for i, v := range got {
			if math.Abs(v-4) > 1e-12 {
				t.Errorf("got[%d] = %v, want 4", i, v)
			}
		}
	})

	t.Run("NonPositiveSigmaCopies", func(t *testing.T) {
		in := []float64{1, 5, 2}
		got := GaussianSmooth(in, 0, 3, 1)
		if !sameBits(got, in) {
			t.Errorf("got %v, want %v", got, in)
		}
		got[0] = 99
		if in[0] != 1 {
			t.Errorf("input was mutated")
		}
	})

	t.Run("MonotonicStaysMonotonic", func(t *testing.T) {
		in := []float64{0, 1, 1, 3, 7, 8, 20, 21, 21, 40}
		got := GaussianSmooth(in, 1.5, 3, 2)
		for i := 1; i < len(got); i++ {
			if got[i] < got[i-1] {
				t.Errorf("got[%d]=%v < got[%d]=%v", i, got[i], i-1, got[i-1])
			}
		}
	})

	t.Run("SpikeIsSpread", func(t *testing.T) {
		got := GaussianSmooth([]float64{0, 0, 0, 10, 0, 0, 0}, 1, 3, 1)
		if got[3] >= 10 || got[3] <= got[2] {
			t.Errorf("spike not attenuated: %v", got)
		}
		if got[2] != got[4] {
			t.Errorf("expected symmetric spread, got %v", got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if got := GaussianSmooth(nil, 2, 3, 1); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}
