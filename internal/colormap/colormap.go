package colormap

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

const (
	DefaultPotentialMax = 40.0 // volts, saturates to Positive
	DefaultPotentialMin = -40.0
	DefaultFieldMax     = 5.0 // V/m, saturates to HighField
)

// Calibration is fixed for the lifetime of a Mapper.
type Calibration struct {
	PotentialMax float64
	PotentialMin float64
	FieldMax     float64
	Positive     colorful.Color
	Negative     colorful.Color
	Background   colorful.Color
	HighField    colorful.Color
}

func DefaultCalibration() Calibration {
	return Calibration{
		PotentialMax: DefaultPotentialMax,
		PotentialMin: DefaultPotentialMin,
		FieldMax:     DefaultFieldMax,
		Positive:     colorful.Color{R: 1, G: 0, B: 0},
		Negative:     colorful.Color{R: 0, G: 0, B: 1},
		Background:   colorful.Color{R: 0, G: 0, B: 0},
		HighField:    colorful.Color{R: 1, G: 1, B: 1},
	}
}

// Mapper turns scalar potentials and field magnitudes into colours. It is
// pure and safe for concurrent use.
type Mapper struct {
	cal Calibration
}

func New(cal Calibration) *Mapper {
	return &Mapper{cal: cal}
}

func (m *Mapper) Calibration() Calibration {
	return m.cal
}

// Potential blends Background to Positive over [0, PotentialMax] and
// Negative to Background over [PotentialMin, 0], clamped. NaN maps to the
// background.
func (m *Mapper) Potential(v float64) color.RGBA {
	if math.IsNaN(v) {
		return rgba(m.cal.Background)
	}
	if v >= 0 {
		t := ramp(v, 0, m.cal.PotentialMax)
		return rgba(m.cal.Background.BlendRgb(m.cal.Positive, t))
	}
	t := ramp(v, m.cal.PotentialMin, 0)
	return rgba(m.cal.Negative.BlendRgb(m.cal.Background, t))
}

// FieldMagnitude blends Background to HighField over [0, FieldMax], clamped.
func (m *Mapper) FieldMagnitude(mag float64) color.RGBA {
	if math.IsNaN(mag) {
		return rgba(m.cal.Background)
	}
	t := ramp(mag, 0, m.cal.FieldMax)
	return rgba(m.cal.Background.BlendRgb(m.cal.HighField, t))
}

func (m *Mapper) PotentialAt(p geom.Point, set charge.Set) color.RGBA {
	return m.Potential(field.Potential(p, set))
}

func (m *Mapper) FieldAt(p geom.Point, set charge.Set) color.RGBA {
	return m.FieldMagnitude(field.Field(p, set).Magnitude())
}

// ramp maps [lo, hi] linearly onto [0, 1] and clamps instead of extrapolating.
func ramp(v, lo, hi float64) float64 {
	t := (v - lo) / (hi - lo)
	switch {
	case !(t > 0):
		return 0
	case t >= 1:
		return 1
	}
	return t
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
