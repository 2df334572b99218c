package engine

import (
	"context"
	"math/rand"

	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/trace"
)

// line is a stored curve and the registry revision it was traced against.
type line struct {
	curve    trace.Curve
	revision uint64
}

// AddEquipotentialLine traces the equipotential through the probe position
// and keeps it. It reports false when there are no charges.
func (e *Engine) AddEquipotentialLine() (trace.Curve, bool) {
	return e.addEquipotential(e.probe.Position())
}

// AddFieldLine is AddEquipotentialLine for the field line through the probe.
func (e *Engine) AddFieldLine() (trace.Curve, bool) {
	return e.addFieldLine(e.probe.Position())
}

// AddLinesAt stores one curve of each kind through seed.
func (e *Engine) AddLinesAt(seed geom.Point) bool {
	_, okField := e.addFieldLine(seed)
	_, okEquip := e.addEquipotential(seed)
	return okField && okEquip
}

// AddRandomLines seeds n line pairs at random points in the play area and
// returns how many pairs were stored.
func (e *Engine) AddRandomLines(rng *rand.Rand, n int) int {
	added := 0
	for i := 0; i < n; i++ {
		if e.AddLinesAt(e.RandomSeed(rng)) {
			added++
		}
	}
	return added
}

func (e *Engine) addEquipotential(seed geom.Point) (trace.Curve, bool) {
	c, ok := e.TraceEquipotential(seed)
	if ok {
		e.equipotentials = append(e.equipotentials, line{curve: c, revision: e.revision})
	}
	return c, ok
}

func (e *Engine) addFieldLine(seed geom.Point) (trace.Curve, bool) {
	c, ok := e.TraceFieldLine(seed)
	if ok {
		e.fieldLines = append(e.fieldLines, line{curve: c, revision: e.revision})
	}
	return c, ok
}

func (e *Engine) EquipotentialLines() []trace.Curve {
	return curves(e.equipotentials)
}

func (e *Engine) FieldLines() []trace.Curve {
	return curves(e.fieldLines)
}

func curves(lines []line) []trace.Curve {
	out := make([]trace.Curve, len(lines))
	for i, l := range lines {
		out[i] = l.curve
	}
	return out
}

func (e *Engine) ClearEquipotentialLines() {
	e.equipotentials = nil
}

func (e *Engine) ClearFieldLines() {
	e.fieldLines = nil
}

// LinesStale reports whether any stored line predates the last charge change.
func (e *Engine) LinesStale() bool {
	for _, set := range [][]line{e.equipotentials, e.fieldLines} {
		for _, l := range set {
			if l.revision != e.revision {
				return true
			}
		}
	}
	return false
}

// RetraceLines regenerates every stored line from its seed against the
// current charges. Lines that no longer exist, because every charge was
// removed, are dropped.
func (e *Engine) RetraceLines(ctx context.Context) error {
	all := append(append([]line(nil), e.equipotentials...), e.fieldLines...)
	if len(all) == 0 {
		return nil
	}
	reqs := make([]trace.Request, len(all))
	for i, l := range all {
		reqs[i] = trace.Request{Kind: l.curve.Kind, Seed: l.curve.Seed}
	}

	results, err := trace.Batch(ctx, e.tracer, e.reg.Snapshot(), reqs)
	if err != nil {
		return err
	}

	var equipotentials, fieldLines []line
	for _, r := range results {
		if !r.OK {
			continue
		}
		l := line{curve: r.Curve, revision: e.revision}
		if r.Request.Kind == trace.Equipotential {
			equipotentials = append(equipotentials, l)
		} else {
			fieldLines = append(fieldLines, l)
		}
	}
	e.log.Debug("lines retraced",
		"requested", len(reqs),
		"equipotentials", len(equipotentials),
		"field_lines", len(fieldLines))
	e.equipotentials, e.fieldLines = equipotentials, fieldLines
	return nil
}
