package field

import (
	"math"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/geom"
)

// K is the prefactor in E = K*Q/r^2 with Q in nanocoulombs and r in meters,
// giving E in V/m and potential in V. Visual calibration depends on it.
const K = 9.0

// Contribution is the field at p due to c alone.
func Contribution(p geom.Point, c charge.Charge) geom.Point {
	d := p.Sub(c.Position)
	r3 := math.Pow(d.Magnitude(), 3)
	return d.Scale(K * c.Sign.Float() / r3)
}

// PotentialContribution is the potential at p due to c alone.
func PotentialContribution(p geom.Point, c charge.Charge) float64 {
	return K * c.Sign.Float() / p.Distance(c.Position)
}

// Field sums every charge's contribution at p. It is the zero vector for an
// empty set and non-finite when p coincides with a charge.
func Field(p geom.Point, set charge.Set) geom.Point {
	var e geom.Point
	for _, c := range set {
		d := p.Sub(c.Position)
		r3 := math.Pow(d.Magnitude(), 3)
		e = e.Add(d.Scale(c.Sign.Float() / r3))
	}
	return e.Scale(K)
}

// Potential sums every charge's potential at p.
func Potential(p geom.Point, set charge.Set) float64 {
	v := 0.0
	for _, c := range set {
		v += c.Sign.Float() / p.Distance(c.Position)
	}
	return v * K
}

// FieldChange is the change of the field at p when a charge of the given
// sign moves from oldPos to newPos.
func FieldChange(p, newPos, oldPos geom.Point, sign charge.Sign) geom.Point {
	newD := p.Sub(newPos)
	oldD := p.Sub(oldPos)
	newE := newD.Scale(1 / math.Pow(newD.Magnitude(), 3))
	oldE := oldD.Scale(1 / math.Pow(oldD.Magnitude(), 3))
	return newE.Sub(oldE).Scale(sign.Float() * K)
}

// PotentialChange is the potential counterpart of FieldChange.
func PotentialChange(p, newPos, oldPos geom.Point, sign charge.Sign) float64 {
	return sign.Float() * K * (1/p.Distance(newPos) - 1/p.Distance(oldPos))
}
