package trace

import (
	"fmt"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

// Tracer holds the walk bounds. It keeps no state between traces and may be
// shared by goroutines as long as each passes its own charge set.
type Tracer struct {
	cfg  Config
	maxE float64
}

func New(cfg Config) (*Tracer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracer{cfg: cfg, maxE: cfg.MaxFieldMagnitude()}, nil
}

// NewDefault returns a tracer with DefaultConfig.
func NewDefault() *Tracer {
	t, _ := New(DefaultConfig())
	return t
}

func (t *Tracer) Config() Config {
	return t.cfg
}

// Trace dispatches on kind.
func (t *Tracer) Trace(kind Kind, seed geom.Point, set charge.Set) (Curve, bool, error) {
	switch kind {
	case FieldLine:
		c, ok := t.FieldLine(seed, set)
		return c, ok, nil
	case Equipotential:
		c, ok := t.Equipotential(seed, set)
		return c, ok, nil
	}
	return Curve{}, false, fmt.Errorf("trace: unsupported kind %v", kind)
}

// FieldLine walks forward along the field and backward against it, each
// independently bounded. It reports false when there are no charges.
func (t *Tracer) FieldLine(seed geom.Point, set charge.Set) (Curve, bool) {
	if len(set) == 0 {
		return Curve{}, false
	}

	forward, fwdStop := t.walkField(seed, set, t.cfg.StepLength)
	backward, bwdStop := t.walkField(seed, set, -t.cfg.StepLength)

	c := newCurve(FieldLine, seed, field.Potential(seed, set), backward, forward)
	c.Start = bwdStop
	c.End = fwdStop
	return c, true
}

func (t *Tracer) walkField(seed geom.Point, set charge.Set, step float64) ([]geom.Point, StopReason) {
	points := make([]geom.Point, 0, 256)
	cur := seed

	for n := 0; ; n++ {
		if n >= t.cfg.StepMax {
			return points, StepBudget
		}
		if cur.Magnitude() >= t.cfg.MaxDistance {
			return points, LeftArea
		}
		e := field.Field(cur, set)
		if e.Magnitude() >= t.maxE {
			return points, FieldClamp
		}

		next := fieldStep(cur, e, set, step)
		if !next.IsFinite() {
			return points, NonFinite
		}
		points = append(points, next)
		cur = next
	}
}

// Equipotential walks the contour through seed in both directions at once.
// When the two walks close to within half a step of each other, each takes
// one more step and the trace ends. It reports false when there are no
// charges.
func (t *Tracer) Equipotential(seed geom.Point, set charge.Set) (Curve, bool) {
	if len(set) == 0 {
		return Curve{}, false
	}

	target := field.Potential(seed, set)
	step := t.cfg.StepLength

	clockwise := make([]geom.Point, 0, 256)
	counter := make([]geom.Point, 0, 256)
	cw, ccw := seed, seed
	readyToBreak := false
	stop := StepBudget

	for n := 0; n < t.cfg.StepMax; n++ {
		if cw.Magnitude() >= t.cfg.MaxDistance || ccw.Magnitude() >= t.cfg.MaxDistance {
			stop = LeftArea
			break
		}

		nextCW := equipotentialStep(cw, set, target, step)
		nextCCW := equipotentialStep(ccw, set, target, -step)
		if !nextCW.IsFinite() || !nextCCW.IsFinite() {
			stop = NonFinite
			break
		}
		clockwise = append(clockwise, nextCW)
		counter = append(counter, nextCCW)

		if readyToBreak {
			stop = LoopClosed
			break
		}
		if nextCW.Distance(nextCCW) < step/2 {
			readyToBreak = true
		}

		cw, ccw = nextCW, nextCCW
	}

	c := newCurve(Equipotential, seed, target, clockwise, counter)
	c.Start = stop
	c.End = stop
	return c, true
}
