package trace

import (
	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

// fieldStep advances along the field with the midpoint method: half a step
// along the local direction, then a full step from p along the direction
// found at the midpoint. A negative step walks against the field. e is the
// field at p, already evaluated by the caller.
func fieldStep(p, e geom.Point, set charge.Set, step float64) geom.Point {
	mid := p.Add(e.Normalized().Scale(step / 2))
	midE := field.Field(mid, set)
	return p.Add(midE.Normalized().Scale(step))
}

// equipotentialStep moves a distance step perpendicular to the field
// (predictor), then along the field at that point by the potential error
// over |E|^2 (corrector), landing back on the target contour. A positive
// step moves 90 degrees counter-clockwise from the field direction.
func equipotentialStep(p geom.Point, set charge.Set, target, step float64) geom.Point {
	e := field.Field(p, set)
	tangent := e.Normalized().Perp()
	mid := p.Add(tangent.Scale(step))

	midE := field.Field(mid, set)
	dv := field.Potential(mid, set) - target
	return mid.Add(midE.Scale(dv / midE.MagnitudeSquared()))
}
