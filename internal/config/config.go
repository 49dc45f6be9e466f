package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFunction = "x*x + sin(x)"
	DefaultFrom     = -3.0
	DefaultTo       = 3.0
	DefaultSamples  = 601
	DefaultWidth    = WidthFloat64
	// Zero check step and tolerance are derived from the scalar width.
	DefaultCheckStep = 0.0
	DefaultCheckTol  = 0.0
)

// Scalar widths accepted by the width field.
const (
	WidthFloat64 = "float64"
	WidthFloat32 = "float32"
)

// ErrInvalidConfig indicates a config that fails Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Function string      `yaml:"function"`
	Script   string      `yaml:"script,omitempty"`
	From     float64     `yaml:"from"`
	To       float64     `yaml:"to"`
	Samples  int         `yaml:"samples"`
	Width    string      `yaml:"width"`
	Workers  int         `yaml:"workers"`
	Check    CheckConfig `yaml:"check"`
}

type CheckConfig struct {
	Step      float64 `yaml:"step"`
	Tolerance float64 `yaml:"tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Function: DefaultFunction,
		From:     DefaultFrom,
		To:       DefaultTo,
		Samples:  DefaultSamples,
		Width:    DefaultWidth,
		Check: CheckConfig{
			Step:      DefaultCheckStep,
			Tolerance: DefaultCheckTol,
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Function == "" && c.Script == "" {
		return fmt.Errorf("%w: function or script required", ErrInvalidConfig)
	}
	if c.Samples < 1 {
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, c.Samples)
	}
	if c.From > c.To {
		return fmt.Errorf("%w: from %v > to %v", ErrInvalidConfig, c.From, c.To)
	}
	if c.Width != WidthFloat64 && c.Width != WidthFloat32 {
		return fmt.Errorf("%w: width %q (want %s or %s)", ErrInvalidConfig, c.Width, WidthFloat64, WidthFloat32)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.Check.Step < 0 || c.Check.Tolerance < 0 {
		return fmt.Errorf("%w: check step and tolerance must not be negative", ErrInvalidConfig)
	}
	return nil
}
