package engine

import (
	"bufio"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type GeneratorConfig struct {
	Scenario      string // "mild", "waves" or "chaos"
	Distribution  string // "gaussian" or "weibull"
	Jurisdictions int
	Days          int
	Seed          int64
	Start         time.Time
}

// Series is the generated daily case count of one jurisdiction.
type Series struct {
	Name  string
	Daily []float64
}

// Cumulative returns the running total of the daily counts, rounded to whole cases.
func (s Series) Cumulative() []int64 {
	out := make([]int64, len(s.Daily))
	var total float64
	for i, v := range s.Daily {
		total += v
		out[i] = int64(math.Round(total))
	}
	return out
}

var names = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "District of Columbia", "Florida", "Georgia",
	"Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
	"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
}

func Generate(cfg GeneratorConfig) []Series {
	if cfg.Days <= 0 {
		cfg.Days = 200
	}
	if cfg.Jurisdictions <= 0 {
		cfg.Jurisdictions = 5
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	result := make([]Series, 0, cfg.Jurisdictions)
	for j := 0; j < cfg.Jurisdictions; j++ {
		name := names[j%len(names)]
		if j >= len(names) {
			name = fmt.Sprintf("%s %d", name, j/len(names)+1)
		}

		// 1. Determine Parameters
		waves := 1 // Mild: one wave centered in the period
		switch cfg.Scenario {
		case "waves", "chaos":
			waves = 2 + rng.Intn(2)
		}
		scale := 200 + rng.Float64()*800

		// 2. Lay out the waves
		daily := make([]float64, cfg.Days)
		span := float64(cfg.Days) / float64(waves)
		for w := 0; w < waves; w++ {
			center := span*float64(w) + span*(0.4+rng.Float64()*0.2)
			width := span * (0.12 + rng.Float64()*0.06)
			height := scale * (0.5 + rng.Float64())
			for i := range daily {
				daily[i] += height * waveShape(float64(i), center, width, cfg.Distribution)
			}
		}

		// 3. Add reporting noise
		for i := range daily {
			daily[i] *= 0.9 + rng.Float64()*0.2
			if cfg.Scenario == "chaos" {
				// Weekend dips followed by catch-up reporting
				switch i % 7 {
				case 5, 6:
					daily[i] *= 0.4
				case 0:
					daily[i] *= 1.8
				}
				// Occasional corrections that revise the total downwards
				if rng.Float64() < 0.02 {
					daily[i] = -daily[i] * rng.Float64()
				}
			}
		}

		result = append(result, Series{Name: name, Daily: daily})
	}
	return result
}

// waveShape returns the relative height of a wave at day x, peaking at 1.
func waveShape(x, center, width float64, distribution string) float64 {
	if distribution == "weibull" {
		// Right-skewed: shifted Weibull density normalized to its mode
		k, lambda := 2.0, width*2
		t := x - (center - lambda*math.Sqrt((k-1)/k))
		if t <= 0 {
			return 0
		}
		mode := lambda * math.Pow((k-1)/k, 1/k)
		return weibullDensity(t, k, lambda) / weibullDensity(mode, k, lambda)
	}
	d := (x - center) / width
	return math.Exp(-0.5 * d * d)
}

func weibullDensity(x, k, lambda float64) float64 {
	r := x / lambda
	return (k / lambda) * math.Pow(r, k-1) * math.Exp(-math.Pow(r, k))
}

// Save writes the series as a us-states style CSV (date,state,fips,cases,deaths).
func Save(path string, start time.Time, series []Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "date,state,fips,cases,deaths")
	cumulative := make([][]int64, len(series))
	for j, s := range series {
		cumulative[j] = s.Cumulative()
	}
	days := 0
	if len(series) > 0 {
		days = len(series[0].Daily)
	}
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		for j, s := range series {
			fmt.Fprintf(w, "%s,%s,%02d,%d,0\n", date, s.Name, j+1, cumulative[j][i])
		}
	}
	return w.Flush()
}
