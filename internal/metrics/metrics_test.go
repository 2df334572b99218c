package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/trace"
)

var single = charge.Set{charge.New(geom.Pt(0, 0), charge.Positive)}

func TestPotentialDrift(t *testing.T) {
	m := NewPotentialDrift()

	m.Observe(geom.Pt(1, 0), single)
	m.Observe(geom.Pt(0, 1), single)
	if m.Value() > 1e-12 {
		t.Errorf("expected no drift on a circle, got %g", m.Value())
	}

	m.Observe(geom.Pt(3, 0), single)
	if math.Abs(m.Value()-6) > 1e-12 {
		t.Errorf("expected drift 6 V, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
	m.Observe(geom.Pt(3, 0), single)
	if m.Value() != 0 {
		t.Error("first point after reset should become the reference")
	}
}

func TestMaxField(t *testing.T) {
	m := NewMaxField()
	m.Observe(geom.Pt(3, 0), single)
	m.Observe(geom.Pt(1, 0), single)
	m.Observe(geom.Pt(0, 2), single)
	if math.Abs(m.Value()-9) > 1e-12 {
		t.Errorf("expected max field 9, got %g", m.Value())
	}
}

func TestFieldAlignment(t *testing.T) {
	tests := []struct {
		name string
		pts  []geom.Point
		want float64
	}{
		{"radial outward", []geom.Point{geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(3, 0)}, 1},
		{"radial inward", []geom.Point{geom.Pt(0, 3), geom.Pt(0, 2)}, -1},
		{"tangential", []geom.Point{geom.Pt(1, -0.5), geom.Pt(1, 0.5)}, 0},
		{"single point", []geom.Point{geom.Pt(1, 1)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFieldAlignment()
			for _, p := range tt.pts {
				m.Observe(p, single)
			}
			if math.Abs(m.Value()-tt.want) > 1e-12 {
				t.Errorf("expected %g, got %g", tt.want, m.Value())
			}
		})
	}
}

func TestEvaluateTracedCurves(t *testing.T) {
	dipole := charge.Set{
		charge.New(geom.Pt(-1, 0), charge.Positive),
		charge.New(geom.Pt(1, 0), charge.Negative),
	}
	tr := trace.NewDefault()

	line, ok := tr.FieldLine(geom.Pt(0, 0.5), dipole)
	if !ok {
		t.Fatal("expected field line")
	}
	got := Evaluate(line, dipole, ForKind(trace.FieldLine)...)
	if got["field_alignment"] < 0.99 {
		t.Errorf("expected field line to follow the field, alignment %g", got["field_alignment"])
	}
	if got["max_field"] < 1000 {
		t.Errorf("expected the line to approach a charge, max field %g", got["max_field"])
	}

	equip, ok := tr.Equipotential(geom.Pt(-0.5, 0.5), dipole)
	if !ok {
		t.Fatal("expected equipotential")
	}
	got = Evaluate(equip, dipole, ForKind(trace.Equipotential)...)
	if drift := got["potential_drift"]; drift > 0.01*math.Abs(equip.Potential) {
		t.Errorf("expected drift within 1%% of %g, got %g", equip.Potential, drift)
	}
	if _, ok := got["field_alignment"]; ok {
		t.Error("equipotentials should not be scored for alignment")
	}
}
