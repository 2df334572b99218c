package charge

import (
	"fmt"

	"github.com/san-kum/chargefield/internal/geom"
)

// Sign is the only magnitude a charge carries: every charge is a unit charge.
type Sign int8

const (
	Negative Sign = -1
	Positive Sign = 1
)

func (s Sign) Valid() bool {
	return s == Positive || s == Negative
}

func (s Sign) Float() float64 {
	return float64(s)
}

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return fmt.Sprintf("Sign(%d)", int8(s))
	}
}

// ParseSign validates untrusted input such as config files or flags.
func ParseSign(v int) (Sign, error) {
	if v != 1 && v != -1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSign, v)
	}
	return Sign(v), nil
}

// MustSign panics unless v is +1 or -1.
func MustSign(v int) Sign {
	s, err := ParseSign(v)
	if err != nil {
		panic(err)
	}
	return s
}

// Charge is a unit point charge.
type Charge struct {
	Position geom.Point
	Sign     Sign
}

// New panics on an invalid sign; a malformed sign is a programming error.
func New(pos geom.Point, sign Sign) Charge {
	mustBeValid(sign)
	return Charge{Position: pos, Sign: sign}
}

func mustBeValid(sign Sign) {
	if !sign.Valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidSign, int8(sign)))
	}
}

// Set is an ordered collection of charges. Order only matters for
// deterministic iteration.
type Set []Charge

func (s Set) Clone() Set {
	c := make(Set, len(s))
	copy(c, s)
	return c
}

// NetCharge is the sum of signs.
func (s Set) NetCharge() int {
	n := 0
	for _, c := range s {
		n += int(c.Sign)
	}
	return n
}
