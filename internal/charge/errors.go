package charge

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSign indicates a sign other than +1 or -1.
	ErrInvalidSign = errors.New("charge: sign must be +1 or -1")

	// ErrUnknownCharge indicates an ID that is not in the registry.
	ErrUnknownCharge = errors.New("charge: unknown charge id")
)

// ChargeError attaches the offending charge ID to a registry error.
type ChargeError struct {
	ID      ID
	Op      string
	Wrapped error
}

func (e *ChargeError) Error() string {
	return fmt.Sprintf("%s charge %d: %v", e.Op, e.ID, e.Wrapped)
}

func (e *ChargeError) Unwrap() error {
	return e.Wrapped
}
