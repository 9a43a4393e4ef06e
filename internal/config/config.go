// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/pdfrescaler/pkg/utils"
)

const (
	DefaultZoomPercent = 107.0
	DefaultPreviewDPI  = 72.0
)

// Config is read once at startup and never written back.
type Config struct {
	WorkDir            string  `yaml:"work_dir"`
	OutputSubdir       string  `yaml:"output_subdir"`
	DefaultZoomPercent float64 `yaml:"default_zoom_percent"`
	LogDir             string  `yaml:"log_dir"`
	PreviewDPI         float64 `yaml:"preview_dpi"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path. A missing file is not an error and yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if cfg.DefaultZoomPercent <= 0 {
		return nil, fmt.Errorf("default_zoom_percent must be greater than 0, got %v", cfg.DefaultZoomPercent)
	}

	return &cfg, nil
}

// OutputDir is where rescaled documents are written.
func (c *Config) OutputDir() string {
	return filepath.Join(c.WorkDir, c.OutputSubdir)
}

func (c *Config) applyDefaults() {
	if c.WorkDir == "" {
		c.WorkDir = utils.GetDefaultWorkDir()
	}
	if c.OutputSubdir == "" {
		c.OutputSubdir = utils.DefaultOutputSubdir
	}
	if c.DefaultZoomPercent == 0 {
		c.DefaultZoomPercent = DefaultZoomPercent
	}
	if c.PreviewDPI <= 0 {
		c.PreviewDPI = DefaultPreviewDPI
	}
	if c.LogDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.LogDir = filepath.Join(home, "pdfrescaler-logs")
		} else {
			c.LogDir = "pdfrescaler-logs"
		}
	}
}
