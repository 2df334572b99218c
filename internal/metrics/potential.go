package metrics

import (
	"math"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

// PotentialDrift is the largest deviation, in volts, of the potential along
// a curve from the potential at its first point.
type PotentialDrift struct {
	name      string
	reference float64
	maxDrift  float64
	samples   int
}

func NewPotentialDrift() *PotentialDrift {
	return &PotentialDrift{name: "potential_drift"}
}

func (d *PotentialDrift) Name() string { return d.name }

func (d *PotentialDrift) Observe(p geom.Point, set charge.Set) {
	v := field.Potential(p, set)
	if d.samples == 0 {
		d.reference = v
	}
	d.samples++
	d.maxDrift = math.Max(d.maxDrift, math.Abs(v-d.reference))
}

func (d *PotentialDrift) Value() float64 {
	return d.maxDrift
}

func (d *PotentialDrift) Reset() {
	d.reference = 0
	d.maxDrift = 0
	d.samples = 0
}

// MaxField is the strongest field magnitude seen along a curve.
type MaxField struct {
	name string
	max  float64
}

func NewMaxField() *MaxField {
	return &MaxField{name: "max_field"}
}

func (m *MaxField) Name() string { return m.name }

func (m *MaxField) Observe(p geom.Point, set charge.Set) {
	m.max = math.Max(m.max, field.Field(p, set).Magnitude())
}

func (m *MaxField) Value() float64 {
	return m.max
}

func (m *MaxField) Reset() {
	m.max = 0
}
