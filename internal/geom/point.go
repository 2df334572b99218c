package geom

import (
	"fmt"
	"math"
)

// Point is a 2-D coordinate or vector in model units (meters).
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) MagnitudeSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

func (p Point) Magnitude() float64 {
	return math.Sqrt(p.MagnitudeSquared())
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Magnitude()
}

// Normalized returns the unit vector along p. The zero vector has no
// direction and yields NaN components.
func (p Point) Normalized() Point {
	m := p.Magnitude()
	return Point{X: p.X / m, Y: p.Y / m}
}

// Rotate turns p counter-clockwise by angle radians.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Perp is p rotated by +90 degrees, exact.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

func (p Point) IsFinite() bool {
	for _, v := range [2]float64{p.X, p.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}
