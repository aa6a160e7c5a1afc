// Package config holds layout constants and the YAML-backed runtime configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Card and panel layout
	CardX       = 32
	CardY       = 84
	CardWidth   = 440
	CardHeight  = 360
	PanelWidth  = 340
	RowHeight   = 38
	Padding     = 16
	LabelOffset = 18

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 32
	SmallButton  = 28

	// Feedback floating button
	FabWidth  = 110
	FabHeight = 36

	// Timings
	LoadingDelay    = 380 * time.Millisecond
	LoadingFade     = 350 * time.Millisecond
	LetterStagger   = 30 * time.Millisecond
	LetterDuration  = 320 * time.Millisecond
	LetterRise      = 12.0
	MaxRating       = 5
	HistoryHeadroom = 60
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the runtime configuration. Defaults are embedded; a user file overrides
// any field it names.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Ambient   AmbientConfig   `yaml:"ambient"`
	Burst     BurstConfig     `yaml:"burst"`
	Audio     AudioConfig     `yaml:"audio"`
	Storage   StorageConfig   `yaml:"storage"`
	Estimator EstimatorConfig `yaml:"estimator"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AmbientConfig tunes the dust field drawn over the estimator card.
type AmbientConfig struct {
	Count     int     `yaml:"count"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	MinDrift  float64 `yaml:"min_drift"`
	MaxDrift  float64 `yaml:"max_drift"`
	MinAlpha  float64 `yaml:"min_alpha"`
	MaxAlpha  float64 `yaml:"max_alpha"`
}

// BurstConfig tunes the celebration burst.
type BurstConfig struct {
	Count      int `yaml:"count"`
	DurationMs int `yaml:"duration_ms"`
	IntervalMs int `yaml:"interval_ms"`
}

func (b BurstConfig) Duration() time.Duration { return time.Duration(b.DurationMs) * time.Millisecond }
func (b BurstConfig) Interval() time.Duration { return time.Duration(b.IntervalMs) * time.Millisecond }

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

type StorageConfig struct {
	AppName string `yaml:"app_name"`
}

// Option is a named multiplier offered by a choice input.
type Option struct {
	Name   string  `yaml:"name"`
	Factor float64 `yaml:"factor"`
}

// Range describes a slider.
type Range struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
	Default float64 `yaml:"default"`
}

type EstimatorConfig struct {
	Complexity Range    `yaml:"complexity"`
	Size       Range    `yaml:"size"`
	Woods      []Option `yaml:"woods"`
	Tools      []Option `yaml:"tools"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and merges the YAML file at path over them.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the widget cannot render.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Ambient.Count < 0 || c.Burst.Count < 0 {
		errs = append(errs, errors.New("particle counts must not be negative"))
	}
	if c.Burst.IntervalMs <= 0 {
		errs = append(errs, errors.New("burst interval must be positive"))
	}
	if len(c.Estimator.Woods) == 0 || len(c.Estimator.Tools) == 0 {
		errs = append(errs, errors.New("estimator needs at least one wood and one tool"))
	}
	for _, o := range append(append([]Option{}, c.Estimator.Woods...), c.Estimator.Tools...) {
		if o.Factor <= 0 {
			errs = append(errs, fmt.Errorf("option %q: factor must be positive", o.Name))
		}
	}
	for name, r := range map[string]Range{"complexity": c.Estimator.Complexity, "size": c.Estimator.Size} {
		if r.Min <= 0 || r.Max < r.Min || r.Step <= 0 {
			errs = append(errs, fmt.Errorf("%s range is invalid", name))
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume %v out of [0, 1]", c.Audio.Volume))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
