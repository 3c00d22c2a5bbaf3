package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/chart"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/segment"
)

const (
	DefaultBaseline    = 120.0
	DefaultStartHour   = 12.0
	DefaultEndHour     = 17.0
	DefaultSampleRate  = 4
	DefaultFloor       = 50.0
	DefaultMaxSelected = 3

	DefaultPlacementStart   = 0.1
	DefaultPlacementSpacing = 0.25
	DefaultPlacementMax     = 0.9

	DefaultChartWidth   = 400.0
	DefaultChartHeight  = 225.0
	DefaultChartPadding = 20.0
	DefaultYMin         = 20.0
	DefaultYMax         = 220.0

	NormalColor    = "#629C47"
	HighColor      = "#FF7B7B"
	LowColor       = "#FF7B7B"
	ReferenceColor = "#B9BCF9"
)

type Config struct {
	Name        string           `yaml:"name"`
	Title       string           `yaml:"title"`
	Unit        string           `yaml:"unit"`
	Baseline    float64          `yaml:"baseline"`
	Window      curve.Window     `yaml:"window"`
	SampleRate  int              `yaml:"sample_rate"`
	Floor       float64          `yaml:"floor"`
	Ceiling     *float64         `yaml:"ceiling,omitempty"`
	MaxSelected int              `yaml:"max_selected"`
	Placement   PlacementConfig  `yaml:"placement"`
	Defaults    catalog.Defaults `yaml:"defaults"`
	Chart       ChartConfig      `yaml:"chart"`
	Palette     segment.Palette  `yaml:"palette"`
	References  []segment.Rule   `yaml:"references,omitempty"`
	Disclaimer  string           `yaml:"disclaimer,omitempty"`
}

// PlacementConfig controls where a newly selected item lands:
// min(Start + index*Spacing, Max).
type PlacementConfig struct {
	Start   float64 `yaml:"start"`
	Spacing float64 `yaml:"spacing"`
	Max     float64 `yaml:"max"`
}

type ChartConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"`
	YMin    float64 `yaml:"y_min"`
	YMax    float64 `yaml:"y_max"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "blood-sugar",
		Title:       "Blood Sugar Tracker",
		Unit:        "mg/dL",
		Baseline:    DefaultBaseline,
		Window:      curve.Window{StartHour: DefaultStartHour, EndHour: DefaultEndHour},
		SampleRate:  DefaultSampleRate,
		Floor:       DefaultFloor,
		MaxSelected: DefaultMaxSelected,
		Placement: PlacementConfig{
			Start:   DefaultPlacementStart,
			Spacing: DefaultPlacementSpacing,
			Max:     DefaultPlacementMax,
		},
		Defaults: catalog.DefaultDefaults(),
		Chart: ChartConfig{
			Width:   DefaultChartWidth,
			Height:  DefaultChartHeight,
			Padding: DefaultChartPadding,
			YMin:    DefaultYMin,
			YMax:    DefaultYMax,
		},
		Palette: segment.Palette{
			Default: NormalColor,
			Rules: []segment.Rule{
				{Value: 180, Color: HighColor, Label: "High"},
				{Value: 70, Color: LowColor, Below: true, Label: "Low"},
			},
		},
		References: []segment.Rule{
			{Value: 70, Color: LowColor, Label: "Low"},
			{Value: 180, Color: ReferenceColor, Label: "High"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
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

func (c Config) Validate() error {
	w := c.Window
	if !finite(w.StartHour) || !finite(w.EndHour) ||
		w.StartHour < 0 || w.StartHour >= 24 || w.EndHour < 0 || w.EndHour > 24 {
		return fmt.Errorf("window %v-%v: %w", w.StartHour, w.EndHour, ErrInvalidWindow)
	}
	if c.SampleRate < 1 {
		return fmt.Errorf("sample rate %d: %w", c.SampleRate, ErrInvalidSampleRate)
	}
	if !finite(c.Baseline) || !finite(c.Floor) {
		return fmt.Errorf("baseline %v floor %v: %w", c.Baseline, c.Floor, ErrInvalidRange)
	}
	if c.Ceiling != nil && (!finite(*c.Ceiling) || *c.Ceiling < c.Floor) {
		return fmt.Errorf("ceiling %v below floor %v: %w", *c.Ceiling, c.Floor, ErrInvalidRange)
	}
	if !(c.Chart.YMax > c.Chart.YMin) {
		return fmt.Errorf("chart y range %v-%v: %w", c.Chart.YMin, c.Chart.YMax, ErrInvalidRange)
	}
	if c.MaxSelected < 1 {
		return fmt.Errorf("max selected %d: %w", c.MaxSelected, ErrInvalidCapacity)
	}
	return nil
}

// Params returns the synthesizer parameters of the config.
func (c Config) Params() curve.Params {
	return curve.Params{
		Baseline:   c.Baseline,
		Window:     c.Window,
		SampleRate: c.SampleRate,
		Floor:      c.Floor,
		Ceiling:    c.Ceiling,
	}
}

// Frame returns the pixel frame of the configured chart.
func (c Config) Frame() chart.Frame {
	return chart.Frame{
		Width:   c.Chart.Width,
		Height:  c.Chart.Height,
		Padding: c.Chart.Padding,
		YMin:    c.Chart.YMin,
		YMax:    c.Chart.YMax,
	}
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	out := c
	if c.Ceiling != nil {
		v := *c.Ceiling
		out.Ceiling = &v
	}
	out.Palette = c.Palette.Clone()
	if c.References != nil {
		out.References = append([]segment.Rule(nil), c.References...)
	}
	return out
}

func (c Config) WithBaseline(v float64) Config {
	out := c.Clone()
	out.Baseline = v
	return out
}

func (c Config) WithWindow(start, end float64) Config {
	out := c.Clone()
	out.Window = curve.Window{StartHour: start, EndHour: end}
	return out
}

func (c Config) WithSampleRate(rate int) Config {
	out := c.Clone()
	out.SampleRate = rate
	return out
}

// WithBounds sets the clamp floor and an optional ceiling.
func (c Config) WithBounds(floor float64, ceiling *float64) Config {
	out := c.Clone()
	out.Floor = floor
	out.Ceiling = nil
	if ceiling != nil {
		v := *ceiling
		out.Ceiling = &v
	}
	return out
}

func (c Config) WithPalette(p segment.Palette) Config {
	out := c.Clone()
	out.Palette = p.Clone()
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
