package curve

import "testing"

func TestComputeYMax(t *testing.T) {
	overrides := Overrides{"new_york": 12000}

	tests := []struct {
		name     string
		avg      []float64
		key      string
		expected float64
	}{
		{"OverrideWins", []float64{nan, 10, 20, nan}, "new_york", 12000},
		{"OverrideIgnoresData", []float64{nan, 99999, nan}, "new_york", 12000},
		{"HundredsRoundUp", []float64{nan, 120, 250, 180, nan}, "ohio", 280},
		{"ThousandsRoundUp", []float64{nan, 4521, 3000, nan}, "texas", 5000},
		{"AllSentinel", []float64{nan, nan, nan}, "texas", DefaultYMax},
		{"AllZero", []float64{nan, 0, 0, 0, nan}, "texas", DefaultYMax},
		{"OnlyNegative", []float64{nan, -5, -2, nan}, "texas", DefaultYMax},
		{"Empty", nil, "texas", DefaultYMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeYMax(tt.avg, tt.key, overrides); got != tt.expected {
				t.Errorf("ComputeYMax() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOverrides_Lookup(t *testing.T) {
	var empty Overrides
	if _, ok := empty.Lookup("anything"); ok {
		t.Errorf("nil overrides should never match")
	}

	o := Overrides{"ohio": 0}
	v, ok := o.Lookup("ohio")
	if !ok || v != 0 {
		t.Errorf("Lookup(ohio) = %v, %v; want 0, true", v, ok)
	}
	if _, ok := o.Lookup("Ohio"); ok {
		t.Errorf("keys are matched verbatim")
	}
}
