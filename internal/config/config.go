package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/vacdoc/internal/system"
)

type Config struct {
	Root          string `yaml:"root"`           // document root; image patterns are relative to it
	Document      string `yaml:"document"`       // document file, relative to Root
	Workers       int    `yaml:"workers"`        // image decoding goroutines
	CacheBytes    int64  `yaml:"cache_bytes"`    // decoded image cache budget
	PDFDPI        int    `yaml:"pdf_dpi"`        // rasterization DPI for PDF backgrounds
	LogLevel      string `yaml:"log_level"`      // debug, info, warn, error
	Interpolation string `yaml:"interpolation"`  // easing between geometry keys
	HistoryLimit  int    `yaml:"history_limit"`  // undo checkpoints kept, 0 = unbounded
	ThumbnailSize int    `yaml:"thumbnail_size"` // longest side of preview images
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Root:          ".",
		Document:      "document.yaml",
		Workers:       system.DefaultWorkers(),
		CacheBytes:    system.CacheBudget(),
		PDFDPI:        150,
		LogLevel:      "info",
		Interpolation: "linear",
		HistoryLimit:  200,
		ThumbnailSize: 256,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.CacheBytes < 0 {
		return fmt.Errorf("cache_bytes must not be negative, got %d", c.CacheBytes)
	}
	if c.PDFDPI < 1 {
		return fmt.Errorf("pdf_dpi must be positive, got %d", c.PDFDPI)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}
