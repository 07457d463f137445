package curve

import "fmt"

// Analysis bundles everything derived for one jurisdiction.
type Analysis struct {
	Key          string        `json:"key"`
	SmoothFactor float64       `json:"smooth_factor"`
	Series       DerivedSeries `json:"-"`
	Slices       []Slice       `json:"slices"`
	YMax         float64       `json:"y_max"`
}

// Analyze runs Build, Segment and ComputeYMax in order. Each stage only sees
// the previous stage's output.
func Analyze(key string, rows []TimePoint, smoothFactor float64, yOverrides Overrides) (Analysis, error) {
	series, err := Build(rows, smoothFactor)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze %s: %w", key, err)
	}

	slices, err := Segment(series.Avg7Smooth, series.Avg7, series.Dates)
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze %s: %w", key, err)
	}

	return Analysis{
		Key:          key,
		SmoothFactor: smoothFactor,
		Series:       series,
		Slices:       slices,
		YMax:         ComputeYMax(series.Avg7, key, yOverrides),
	}, nil
}

// Peaks returns the peaks of all slices that have one, in chronological order.
func (a Analysis) Peaks() []Peak {
	var result []Peak
	for _, s := range a.Slices {
		if s.Peak != nil {
			result = append(result, *s.Peak)
		}
	}
	return result
}
