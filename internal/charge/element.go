package charge

import "github.com/san-kum/chargefield/internal/geom"

// Positionable is anything placed in the play area: charges and sensors.
type Positionable interface {
	Position() geom.Point
}

// UserControllable elements can be grabbed and dragged.
type UserControllable interface {
	Positionable
	UserControlled() bool
}

// Animatable elements have a home they return to when put away.
type Animatable interface {
	Positionable
	Origin() geom.Point
}

// Particle is a read-only view of a registry entry.
type Particle struct {
	ID     ID
	Charge Charge
	origin geom.Point
	held   bool
}

func (p Particle) Position() geom.Point { return p.Charge.Position }
func (p Particle) Origin() geom.Point   { return p.origin }
func (p Particle) UserControlled() bool { return p.held }

var (
	_ UserControllable = Particle{}
	_ Animatable       = Particle{}
)
