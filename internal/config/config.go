package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath   string
	OutDir     string
	LogDir     string
	ConfigFile string
	Workers    int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables")
	}

	// 3. Resolve Paths
	dataPath := getEnv("DATA_PATH", ".")
	outDir := getEnv("OUT_DIR", filepath.Join(dataPath, "out"))
	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", outDir).Msg("Failed to create output directory")
	}

	workers := getEnvInt("WORKERS", runtime.NumCPU())
	if workers < 1 {
		workers = 1
	}

	cfg := &AppConfig{
		DataPath:   dataPath,
		OutDir:     outDir,
		LogDir:     logDir,
		ConfigFile: getEnv("CONFIG_FILE", filepath.Join(dataPath, "config.json")),
		Workers:    workers,
	}

	return cfg, nil
}

// FolderDir returns the output directory of one folder.
func (c *AppConfig) FolderDir(folder string) string {
	return filepath.Join(c.OutDir, folder)
}

// DatasetPath resolves a dataset path relative to the data directory.
func (c *AppConfig) DatasetPath(dataset string) string {
	if filepath.IsAbs(dataset) {
		return dataset
	}
	return filepath.Join(c.DataPath, dataset)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
