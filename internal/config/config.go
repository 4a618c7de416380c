// Package config loads the build configuration from a JSON file, with
// environment-variable fallbacks for the dataset and output locations.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment fallbacks for the directory settings.
const (
	EnvBaseDir   = "ASL_SIGNS_BASE_DIRECTORY"
	EnvOutputDir = "ASL_SIGNS_OUTPUT_DIRECTORY"
)

// Config is the full configuration surface consumed by the builder.
// Fields omitted from the JSON file keep their defaults, so partial
// configs are safe.
type Config struct {
	// BaseDir is the dataset location: a directory with train.csv and a
	// label map, or a .db file.
	BaseDir string `json:"base_dir"`
	// OutputDir receives the per-sign JSON documents. Defaults to BaseDir.
	OutputDir string `json:"output_dir"`
	// Signs restricts processing to the listed signs. Empty means every
	// sign the dataset knows.
	Signs []string `json:"signs"`
	// MaxFilesPerSign bounds the number of recordings processed per sign.
	MaxFilesPerSign int `json:"max_files_per_sign"`
	// TargetFrames is the fixed per-example frame count.
	TargetFrames int `json:"target_frames"`
	// SmoothingWindow and SmoothingPolyOrder parameterize the
	// Savitzky-Golay smoother. Their mutual validity (odd window, window
	// greater than order) is checked per recording, not here, so an
	// invalid combination skips recordings instead of failing startup.
	SmoothingWindow    int `json:"smoothing_window"`
	SmoothingPolyOrder int `json:"smoothing_polyorder"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		MaxFilesPerSign:    1000,
		TargetFrames:       50,
		SmoothingWindow:    5,
		SmoothingPolyOrder: 3,
	}
}

// Load reads a JSON config file over the defaults and applies environment
// fallbacks. An empty path skips the file and uses defaults plus
// environment only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		cleanPath := filepath.Clean(path)
		if ext := filepath.Ext(cleanPath); ext != ".json" {
			return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
		}
		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", cleanPath, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills unset directory fields from the environment. A .env file
// in the working directory is honoured when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load() // missing .env is fine
	if c.BaseDir == "" {
		c.BaseDir = os.Getenv(EnvBaseDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = os.Getenv(EnvOutputDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = c.BaseDir
	}
}

// Validate checks the structural settings. Smoothing parameters are
// deliberately excluded (see Config).
func (c Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base directory is required (set base_dir or %s)", EnvBaseDir)
	}
	if c.TargetFrames <= 0 {
		return fmt.Errorf("target_frames must be positive, got %d", c.TargetFrames)
	}
	if c.MaxFilesPerSign < 0 {
		return fmt.Errorf("max_files_per_sign must not be negative, got %d", c.MaxFilesPerSign)
	}
	return nil
}
