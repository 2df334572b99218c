package field

import (
	"math"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/geom"
)

// Sample is a cached evaluation at a fixed position. It goes stale whenever
// the charges change; the update methods below bring it current one charge
// at a time without resumming the whole set.
type Sample struct {
	Position  geom.Point
	Field     geom.Point
	Potential float64
}

func Evaluate(p geom.Point, set charge.Set) Sample {
	return Sample{
		Position:  p,
		Field:     Field(p, set),
		Potential: Potential(p, set),
	}
}

// Moved accounts for one charge of the given sign moving from oldPos to newPos.
func (s Sample) Moved(oldPos, newPos geom.Point, sign charge.Sign) Sample {
	s.Field = s.Field.Add(FieldChange(s.Position, newPos, oldPos, sign))
	s.Potential += PotentialChange(s.Position, newPos, oldPos, sign)
	return s
}

func (s Sample) Added(c charge.Charge) Sample {
	s.Field = s.Field.Add(Contribution(s.Position, c))
	s.Potential += PotentialContribution(s.Position, c)
	return s
}

func (s Sample) Removed(c charge.Charge) Sample {
	s.Field = s.Field.Sub(Contribution(s.Position, c))
	s.Potential -= PotentialContribution(s.Position, c)
	return s
}

// Apply folds a registry event into the sample.
func (s Sample) Apply(ev charge.Event) Sample {
	switch ev.Kind {
	case charge.Added:
		return s.Added(ev.Charge)
	case charge.Removed:
		return s.Removed(ev.Charge)
	case charge.Moved:
		return s.Moved(ev.OldPosition, ev.Charge.Position, ev.Charge.Sign)
	}
	return s
}

func (s Sample) Magnitude() float64 {
	return s.Field.Magnitude()
}

func (s Sample) IsFinite() bool {
	return s.Field.IsFinite() && !math.IsNaN(s.Potential) && !math.IsInf(s.Potential, 0)
}
