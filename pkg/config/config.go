// Package config loads the daemon's YAML configuration (SPEC_FULL.md §4.12):
// show metadata, audio capture/FFT parameters, fixture layout, and the
// control-plane/storage/logging surfaces. It never stores timeline data —
// sequences, effects and clips are authored programmatically or by an
// external loader.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the daemon's top-level configuration.
type Config struct {
	Show struct {
		Name            string `yaml:"name"`
		PrimarySequence string `yaml:"primary_sequence"`
	} `yaml:"show"`

	Audio struct {
		InputDevice string `yaml:"input_device"`
		SampleRate  int    `yaml:"sample_rate"`
		BufferSize  int    `yaml:"buffer_size"`
		Fft         struct {
			WindowSize int `yaml:"window_size"`
			HopSize    int `yaml:"hop_size"`
		} `yaml:"fft"`
	} `yaml:"audio"`

	Fixtures []FixtureConfig `yaml:"fixtures"`

	Web struct {
		Port        int    `yaml:"port"`
		BindAddress string `yaml:"bind_address"`
	} `yaml:"web"`

	API struct {
		UnixSocket string `yaml:"unix_socket"`
	} `yaml:"api"`

	Storage struct {
		DatabasePath string `yaml:"database_path"`
		MaxEvents    int    `yaml:"max_events"`
	} `yaml:"storage"`

	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
		Compress   bool   `yaml:"compress"`
		Console    bool   `yaml:"console"`
		Structured bool   `yaml:"structured"`
	} `yaml:"logging"`
}

// FixtureConfig describes one fixture row, a convenience for standing up
// fixture.Info entries at startup.
type FixtureConfig struct {
	Name      string   `yaml:"name"`
	InputType string   `yaml:"input_type"` // color|vec3|combined
	Groups    []uint32 `yaml:"groups"`
	Position  struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
		Z float64 `yaml:"z"`
	} `yaml:"position"`
}

// LoadConfig loads and defaults configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = 44100
	}
	if cfg.Audio.BufferSize == 0 {
		cfg.Audio.BufferSize = 1024
	}
	if cfg.Audio.Fft.WindowSize == 0 {
		cfg.Audio.Fft.WindowSize = 1024
	}
	if cfg.Audio.Fft.HopSize == 0 {
		cfg.Audio.Fft.HopSize = 512
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Web.BindAddress == "" {
		cfg.Web.BindAddress = "0.0.0.0"
	}
	if cfg.API.UnixSocket == "" {
		cfg.API.UnixSocket = "/tmp/lumenshow.sock"
	}
	if cfg.Storage.MaxEvents == 0 {
		cfg.Storage.MaxEvents = 10000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.MaxSize == 0 {
		cfg.Logging.MaxSize = 100
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 5
	}
	if cfg.Logging.MaxAge == 0 {
		cfg.Logging.MaxAge = 30
	}

	return &cfg, nil
}

// Validate checks required fields are present.
func (c *Config) Validate() error {
	if c.Show.Name == "" {
		return fmt.Errorf("show name is required")
	}
	for i, f := range c.Fixtures {
		switch f.InputType {
		case "color", "vec3", "combined":
		default:
			return fmt.Errorf("fixture %d (%s): invalid input_type %q", i, f.Name, f.InputType)
		}
	}
	return nil
}
