package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseAnalysis(t *testing.T) {
	data := []byte(`{
		"title": "Cases",
		"smoothFactor": 3,
		"yOverride": {"new_york": 12000, "ohio": 0},
		"smoothOverride": {"texas": 5},
		"folders": [
			{"name": "us", "dataset": "data/us.csv", "dataKey": "cases"}
		]
	}`)

	cfg, err := ParseAnalysis(data)
	if err != nil {
		t.Fatalf("ParseAnalysis() error: %v", err)
	}

	if cfg.SmoothFactor != 3 {
		t.Errorf("SmoothFactor = %v, want 3", cfg.SmoothFactor)
	}
	if got := cfg.SmoothFactorFor("texas"); got != 5 {
		t.Errorf("SmoothFactorFor(texas) = %v, want 5", got)
	}
	if got := cfg.SmoothFactorFor("ohio"); got != 3 {
		t.Errorf("SmoothFactorFor(ohio) = %v, want 3", got)
	}

	overrides := cfg.YOverrides()
	if v, ok := overrides.Lookup("new_york"); !ok || v != 12000 {
		t.Errorf("YOverrides[new_york] = %v, %v", v, ok)
	}
	if _, ok := overrides.Lookup("ohio"); ok {
		t.Errorf("zero override should be ignored")
	}

	if len(cfg.Folders) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(cfg.Folders))
	}
	opts := cfg.Folders[0].CSVOptions()
	if opts.DataKey != "cases" || opts.ValueType != "int" {
		t.Errorf("unexpected CSV options %+v", opts)
	}
}

func TestParseAnalysis_DefaultFolders(t *testing.T) {
	cfg, err := ParseAnalysis([]byte(`{"smoothFactor": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cfg.Folder("world"); !ok {
		t.Errorf("expected default world folder")
	}
	world, _ := cfg.Folder("world")
	if world.CSVOptions().ValueType != "float" {
		t.Errorf("world values should parse as floats")
	}
}

func TestParseAnalysis_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"NotJSON", `{smoothFactor: 2`},
		{"WrongType", `{"smoothFactor": "two"}`},
		{"MissingSmoothFactor", `{"title": "Cases"}`},
		{"NegativeSmoothFactor", `{"smoothFactor": -1}`},
		{"OverrideNotNumber", `{"smoothFactor": 2, "yOverride": {"ohio": "big"}}`},
		{"IncompleteFolder", `{"smoothFactor": 2, "folders": [{"name": "us", "dataset": "", "dataKey": "cases"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAnalysis([]byte(tt.data)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestLoadAnalysis(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadAnalysis(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.SmoothFactor != DefaultSmoothFactor || len(cfg.Folders) != 2 {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"smoothFactor": 4}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadAnalysis(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SmoothFactor != 4 {
		t.Errorf("SmoothFactor = %v, want 4", cfg.SmoothFactor)
	}
}

func TestSelect(t *testing.T) {
	cfg := DefaultAnalysis()

	all, err := cfg.Select("")
	if err != nil || len(all) != 2 {
		t.Errorf("Select(\"\") = %v, %v", all, err)
	}
	us, err := cfg.Select("us")
	if err != nil || len(us) != 1 || us[0].Name != "us" {
		t.Errorf("Select(us) = %v, %v", us, err)
	}
	if _, err := cfg.Select("mars"); err == nil {
		t.Errorf("expected an error for an unknown folder")
	}
}
