package trace

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/chargefield/internal/field"
)

const (
	DefaultStepMax         = 2000
	DefaultStepLength      = 0.01 // meters
	DefaultClosestApproach = 0.01 // meters
	DefaultWidth           = 6.5  // play area, meters
	DefaultHeight          = 4.0
)

// ErrInvalidConfig indicates tracer bounds that cannot terminate sensibly.
var ErrInvalidConfig = errors.New("trace: invalid config")

// Config bounds every walk. StepMax*StepLength should exceed MaxDistance so
// that lines can reach the edge of the area of interest.
type Config struct {
	StepMax         int
	StepLength      float64
	MaxDistance     float64 // from the origin
	ClosestApproach float64 // to any charge, field lines only
}

func DefaultConfig() Config {
	return Config{
		StepMax:         DefaultStepMax,
		StepLength:      DefaultStepLength,
		MaxDistance:     math.Max(DefaultWidth, DefaultHeight),
		ClosestApproach: DefaultClosestApproach,
	}
}

// MaxFieldMagnitude is the field strength of a unit charge at the closest
// approach distance. Field-line walks stop once the local field exceeds it.
func (c Config) MaxFieldMagnitude() float64 {
	return field.K / (c.ClosestApproach * c.ClosestApproach)
}

func (c Config) Validate() error {
	switch {
	case c.StepMax <= 0:
		return fmt.Errorf("%w: step max must be positive, got %d", ErrInvalidConfig, c.StepMax)
	case !(c.StepLength > 0):
		return fmt.Errorf("%w: step length must be positive, got %g", ErrInvalidConfig, c.StepLength)
	case !(c.MaxDistance > 0):
		return fmt.Errorf("%w: max distance must be positive, got %g", ErrInvalidConfig, c.MaxDistance)
	case !(c.ClosestApproach > 0):
		return fmt.Errorf("%w: closest approach must be positive, got %g", ErrInvalidConfig, c.ClosestApproach)
	}
	return nil
}
