package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `OUT_DIR='charts with "quotes"'`
	tmpfile, err := os.CreateTemp("", ".env.test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(tmpfile.Name())
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `charts with "quotes"`
	if env["OUT_DIR"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["OUT_DIR"])
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_PATH", dir)
	t.Setenv("OUT_DIR", "")
	t.Setenv("LOGS_FOLDER", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("WORKERS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.OutDir != filepath.Join(dir, "out") {
		t.Errorf("OutDir = %s", cfg.OutDir)
	}
	if _, err := os.Stat(cfg.OutDir); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
	if cfg.ConfigFile != filepath.Join(dir, "config.json") {
		t.Errorf("ConfigFile = %s", cfg.ConfigFile)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if got := cfg.FolderDir("us"); got != filepath.Join(dir, "out", "us") {
		t.Errorf("FolderDir = %s", got)
	}
	if got := cfg.DatasetPath("data/us.csv"); got != filepath.Join(dir, "data", "us.csv") {
		t.Errorf("DatasetPath = %s", got)
	}
	if got := cfg.DatasetPath("/abs/world.csv"); got != "/abs/world.csv" {
		t.Errorf("DatasetPath(abs) = %s", got)
	}
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())
	t.Setenv("WORKERS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
}
