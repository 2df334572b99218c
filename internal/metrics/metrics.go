// Package metrics scores traced curves: how well an equipotential holds its
// potential, how closely a field line follows the field, how strong the
// field gets along the way.
package metrics

import (
	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/trace"
)

type Metric interface {
	Name() string
	Observe(p geom.Point, set charge.Set)
	Value() float64
	Reset()
}

// Evaluate resets each metric, feeds it every point of c in order and
// collects the values by name.
func Evaluate(c trace.Curve, set charge.Set, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for _, p := range c.Points() {
		for _, m := range ms {
			m.Observe(p, set)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// ForKind returns the metrics that are meaningful for curves of kind k.
func ForKind(k trace.Kind) []Metric {
	if k == trace.Equipotential {
		return []Metric{NewPotentialDrift(), NewMaxField()}
	}
	return []Metric{NewFieldAlignment(), NewMaxField()}
}
