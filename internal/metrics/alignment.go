package metrics

import (
	"math"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/field"
	"github.com/san-kum/chargefield/internal/geom"
)

// FieldAlignment is the mean cosine between each segment of a curve and the
// field at the segment midpoint. A field line ordered with the field scores
// close to 1.
type FieldAlignment struct {
	name     string
	prev     geom.Point
	started  bool
	sum      float64
	segments int
}

func NewFieldAlignment() *FieldAlignment {
	return &FieldAlignment{name: "field_alignment"}
}

func (a *FieldAlignment) Name() string { return a.name }

func (a *FieldAlignment) Observe(p geom.Point, set charge.Set) {
	if !a.started {
		a.prev, a.started = p, true
		return
	}
	seg := p.Sub(a.prev)
	mid := a.prev.Add(seg.Scale(0.5))
	a.prev = p

	cos := seg.Normalized().Dot(field.Field(mid, set).Normalized())
	if math.IsNaN(cos) {
		return
	}
	a.sum += cos
	a.segments++
}

func (a *FieldAlignment) Value() float64 {
	if a.segments == 0 {
		return 0
	}
	return a.sum / float64(a.segments)
}

func (a *FieldAlignment) Reset() {
	a.prev = geom.Point{}
	a.started = false
	a.sum = 0
	a.segments = 0
}
