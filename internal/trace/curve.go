package trace

import (
	"fmt"

	"github.com/san-kum/chargefield/internal/geom"
)

type Kind int

const (
	FieldLine Kind = iota
	Equipotential
)

func (k Kind) String() string {
	switch k {
	case FieldLine:
		return "field"
	case Equipotential:
		return "equipotential"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "field", "field-line", "fieldline":
		return FieldLine, nil
	case "equipotential", "potential":
		return Equipotential, nil
	}
	return 0, fmt.Errorf("unknown curve kind: %s", s)
}

// StopReason records why one end of a curve stopped growing. Every reason is
// a normal termination.
type StopReason int

const (
	StepBudget StopReason = iota
	LeftArea
	FieldClamp
	LoopClosed
	NonFinite
)

func (r StopReason) String() string {
	switch r {
	case StepBudget:
		return "step budget"
	case LeftArea:
		return "left area"
	case FieldClamp:
		return "field clamp"
	case LoopClosed:
		return "loop closed"
	case NonFinite:
		return "non-finite"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Curve is a traced snapshot. It is not updated when charges change.
//
// For field lines the points run from the backward end through the seed to
// the forward end. For equipotentials they run counter-clockwise: the
// clockwise walk reversed, the seed, then the counter-clockwise walk.
type Curve struct {
	Kind      Kind
	Seed      geom.Point
	Potential float64 // at the seed, held constant for equipotentials
	Start     StopReason
	End       StopReason
	points    []geom.Point
	seedIndex int
}

func newCurve(kind Kind, seed geom.Point, potential float64, before, after []geom.Point) Curve {
	pts := make([]geom.Point, 0, len(before)+1+len(after))
	for i := len(before) - 1; i >= 0; i-- {
		pts = append(pts, before[i])
	}
	pts = append(pts, seed)
	pts = append(pts, after...)
	return Curve{
		Kind:      kind,
		Seed:      seed,
		Potential: potential,
		points:    pts,
		seedIndex: len(before),
	}
}

// Points returns a copy of the ordered points.
func (c Curve) Points() []geom.Point {
	out := make([]geom.Point, len(c.points))
	copy(out, c.points)
	return out
}

func (c Curve) Len() int               { return len(c.points) }
func (c Curve) At(i int) geom.Point    { return c.points[i] }
func (c Curve) SeedIndex() int         { return c.seedIndex }
func (c Curve) First() geom.Point      { return c.points[0] }
func (c Curve) Last() geom.Point       { return c.points[len(c.points)-1] }
func (c Curve) Closed() bool           { return c.Kind == Equipotential && c.End == LoopClosed }
func (c Curve) Truncated() bool        { return c.Start == StepBudget || c.End == StepBudget }
func (c Curve) Backward() []geom.Point { return c.Points()[:c.seedIndex] }
func (c Curve) Forward() []geom.Point  { return c.Points()[c.seedIndex+1:] }

// Length is the summed chord length along the curve.
func (c Curve) Length() float64 {
	l := 0.0
	for i := 1; i < len(c.points); i++ {
		l += c.points[i].Distance(c.points[i-1])
	}
	return l
}
