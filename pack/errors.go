package pack

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingState means a required state (idle or walk) is absent.
	ErrMissingState = errors.New("missing required state")
	// ErrInvalidState means a state is present but cannot be played.
	ErrInvalidState = errors.New("invalid state")
)

// LoadError reports a pack that could not be fetched, parsed or validated.
// The pack that was active before the attempt stays active.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("pack: load %s: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DecodeError reports a sheet image whose size could not be read. It never
// fails a load; the state's geometry degrades to zero instead.
type DecodeError struct {
	Sheet string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pack: decode sheet %s: %v", e.Sheet, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
