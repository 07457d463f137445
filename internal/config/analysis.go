package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"epicurve/internal/curve"
	"epicurve/internal/ingest"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rs/zerolog/log"
)

// DefaultSmoothFactor is the smoothing bandwidth in days when none is configured.
const DefaultSmoothFactor = 2.0

// Folder describes one dataset and the output folder it is analyzed into.
type Folder struct {
	Name      string `json:"name"`
	Dataset   string `json:"dataset"`
	DataKey   string `json:"dataKey"`
	ValueType string `json:"valueType,omitempty"`
	URL       string `json:"url,omitempty"`
	Source    string `json:"source,omitempty"`
}

// CSVOptions returns the ingest options for the folder's dataset.
func (f Folder) CSVOptions() *ingest.CSVOptions {
	opts := ingest.DefaultCSVOptions(f.DataKey)
	if f.ValueType != "" {
		opts.ValueType = ingest.ValueType(f.ValueType)
	}
	return opts
}

// AnalysisConfig holds the analysis settings read from config.json.
type AnalysisConfig struct {
	Title          string             `json:"title,omitempty"`
	SmoothFactor   float64            `json:"smoothFactor"`
	YOverride      map[string]float64 `json:"yOverride,omitempty"`
	SmoothOverride map[string]float64 `json:"smoothOverride,omitempty"`
	Folders        []Folder           `json:"folders,omitempty"`
}

// DefaultAnalysis returns the settings used when no config file exists.
func DefaultAnalysis() *AnalysisConfig {
	return &AnalysisConfig{
		Title:        "Cases",
		SmoothFactor: DefaultSmoothFactor,
		Folders: []Folder{
			{
				Name:    "us",
				Dataset: "data/us.csv",
				DataKey: "cases",
				URL:     "https://raw.githubusercontent.com/nytimes/covid-19-data/master/us-states.csv",
				Source:  "nytimes.com",
			},
			{
				Name:      "world",
				Dataset:   "data/world.csv",
				DataKey:   "total_cases",
				ValueType: string(ingest.FloatValues),
				URL:       "https://covid.ourworldindata.org/data/owid-covid-data.csv",
				Source:    "ourworldindata.org",
			},
		},
	}
}

var analysisSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	schema, err := jsonschema.For[AnalysisConfig](nil)
	if err != nil {
		return nil, err
	}
	return schema.Resolve(nil)
})

// LoadAnalysis reads and validates an analysis config file. A missing file
// yields DefaultAnalysis.
func LoadAnalysis(path string) (*AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("No analysis config found, using defaults")
			return DefaultAnalysis(), nil
		}
		return nil, fmt.Errorf("failed to read analysis config: %w", err)
	}
	return ParseAnalysis(data)
}

// ParseAnalysis validates data against the AnalysisConfig schema and decodes it.
// Folders left out of the document fall back to the defaults.
func ParseAnalysis(data []byte) (*AnalysisConfig, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	resolved, err := analysisSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build config schema: %w", err)
	}
	if err := resolved.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	var cfg AnalysisConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	if cfg.SmoothFactor <= 0 {
		return nil, fmt.Errorf("invalid analysis config: smoothFactor must be positive, got %v", cfg.SmoothFactor)
	}
	if len(cfg.Folders) == 0 {
		cfg.Folders = DefaultAnalysis().Folders
	}
	for _, f := range cfg.Folders {
		if f.Name == "" || f.Dataset == "" || f.DataKey == "" {
			return nil, fmt.Errorf("invalid analysis config: folder %q needs name, dataset and dataKey", f.Name)
		}
	}
	return &cfg, nil
}

// SmoothFactorFor returns the smoothing bandwidth for a jurisdiction.
func (c *AnalysisConfig) SmoothFactorFor(key string) float64 {
	if v, ok := c.SmoothOverride[key]; ok && v > 0 {
		return v
	}
	return c.SmoothFactor
}

// YOverrides returns the y-axis overrides. Non-positive entries are ignored.
func (c *AnalysisConfig) YOverrides() curve.Overrides {
	result := make(curve.Overrides, len(c.YOverride))
	for k, v := range c.YOverride {
		if v > 0 {
			result[k] = v
		}
	}
	return result
}

// Folder looks up a folder by name.
func (c *AnalysisConfig) Folder(name string) (Folder, bool) {
	for _, f := range c.Folders {
		if f.Name == name {
			return f, true
		}
	}
	return Folder{}, false
}

// Select returns the named folder, or every folder when name is empty.
func (c *AnalysisConfig) Select(name string) ([]Folder, error) {
	if name == "" {
		return c.Folders, nil
	}
	f, ok := c.Folder(name)
	if !ok {
		return nil, fmt.Errorf("unknown folder %q", name)
	}
	return []Folder{f}, nil
}
