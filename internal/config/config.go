package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/colormap"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/sensor"
	"github.com/san-kum/chargefield/internal/trace"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = trace.DefaultWidth
	DefaultHeight   = trace.DefaultHeight
	DefaultProbeX   = -1.5
	DefaultProbeY   = -0.5
	DefaultPlusHex  = "#ff0000"
	DefaultMinusHex = "#0000ff"
	DefaultBackHex  = "#000000"
	DefaultHighHex  = "#ffffff"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Area    AreaConfig     `yaml:"area"`
	Trace   TraceConfig    `yaml:"trace"`
	Colors  ColorConfig    `yaml:"colors"`
	Grid    GridConfig     `yaml:"grid"`
	Probe   PointConfig    `yaml:"probe"`
	Charges []ChargeConfig `yaml:"charges"`
	Seeds   []PointConfig  `yaml:"seeds"`
}

type AreaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type TraceConfig struct {
	StepMax         int     `yaml:"step_max"`
	StepLength      float64 `yaml:"step_length"`
	MaxDistance     float64 `yaml:"max_distance"` // 0 means max(width, height)
	ClosestApproach float64 `yaml:"closest_approach"`
}

type ColorConfig struct {
	PotentialMax float64 `yaml:"potential_max"`
	PotentialMin float64 `yaml:"potential_min"`
	FieldMax     float64 `yaml:"field_max"`
	Positive     string  `yaml:"positive"`
	Negative     string  `yaml:"negative"`
	Background   string  `yaml:"background"`
	HighField    string  `yaml:"high_field"`
}

type GridConfig struct {
	FieldColumns     int `yaml:"field_columns"`
	PotentialColumns int `yaml:"potential_columns"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointConfig) Point() geom.Point {
	return geom.Pt(p.X, p.Y)
}

type ChargeConfig struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Sign int     `yaml:"sign"`
}

func DefaultConfig() *Config {
	return &Config{
		Area: AreaConfig{Width: DefaultWidth, Height: DefaultHeight},
		Trace: TraceConfig{
			StepMax:         trace.DefaultStepMax,
			StepLength:      trace.DefaultStepLength,
			ClosestApproach: trace.DefaultClosestApproach,
		},
		Colors: ColorConfig{
			PotentialMax: colormap.DefaultPotentialMax,
			PotentialMin: colormap.DefaultPotentialMin,
			FieldMax:     colormap.DefaultFieldMax,
			Positive:     DefaultPlusHex,
			Negative:     DefaultMinusHex,
			Background:   DefaultBackHex,
			HighField:    DefaultHighHex,
		},
		Grid: GridConfig{
			FieldColumns:     sensor.DefaultFieldColumns,
			PotentialColumns: sensor.DefaultPotentialColumns,
		},
		Probe: PointConfig{X: DefaultProbeX, Y: DefaultProbeY},
	}
}

// Load reads a YAML file over the defaults and validates the result.
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
	if !(c.Area.Width > 0) || !(c.Area.Height > 0) {
		return fmt.Errorf("%w: area must be positive, got %gx%g", ErrInvalid, c.Area.Width, c.Area.Height)
	}
	if err := c.TracerConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Calibration(); err != nil {
		return err
	}
	if c.Grid.FieldColumns < 0 || c.Grid.PotentialColumns < 0 {
		return fmt.Errorf("%w: grid columns must not be negative", ErrInvalid)
	}
	if _, err := c.ChargeSet(); err != nil {
		return err
	}
	return nil
}

func (c *Config) TracerConfig() trace.Config {
	maxDistance := c.Trace.MaxDistance
	if maxDistance == 0 {
		maxDistance = math.Max(c.Area.Width, c.Area.Height)
	}
	return trace.Config{
		StepMax:         c.Trace.StepMax,
		StepLength:      c.Trace.StepLength,
		MaxDistance:     maxDistance,
		ClosestApproach: c.Trace.ClosestApproach,
	}
}

func (c *Config) Calibration() (colormap.Calibration, error) {
	cc := c.Colors
	if !(cc.PotentialMax > 0) || !(cc.PotentialMin < 0) || !(cc.FieldMax > 0) {
		return colormap.Calibration{}, fmt.Errorf("%w: colour ranges need potential_min < 0 < potential_max and field_max > 0", ErrInvalid)
	}

	cal := colormap.Calibration{
		PotentialMax: cc.PotentialMax,
		PotentialMin: cc.PotentialMin,
		FieldMax:     cc.FieldMax,
	}
	for _, f := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"positive", cc.Positive, &cal.Positive},
		{"negative", cc.Negative, &cal.Negative},
		{"background", cc.Background, &cal.Background},
		{"high_field", cc.HighField, &cal.HighField},
	} {
		col, err := colorful.Hex(f.hex)
		if err != nil {
			return colormap.Calibration{}, fmt.Errorf("%w: colour %s: %v", ErrInvalid, f.name, err)
		}
		*f.dst = col
	}
	return cal, nil
}

// ChargeSet converts the configured charges, rejecting bad signs.
func (c *Config) ChargeSet() (charge.Set, error) {
	set := make(charge.Set, 0, len(c.Charges))
	for i, cc := range c.Charges {
		sign, err := charge.ParseSign(cc.Sign)
		if err != nil {
			return nil, fmt.Errorf("%w: charge %d: %w", ErrInvalid, i, err)
		}
		set = append(set, charge.New(geom.Pt(cc.X, cc.Y), sign))
	}
	return set, nil
}

func (c *Config) SeedPoints() []geom.Point {
	pts := make([]geom.Point, len(c.Seeds))
	for i, s := range c.Seeds {
		pts[i] = s.Point()
	}
	return pts
}
