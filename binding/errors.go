package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a required resolver, target or
	// consumer is missing, or a chain would exceed Config.MaxDepth.
	ErrInvalidArgument = errors.New("binding: invalid argument")
	// ErrResolution is wrapped by every *ResolutionError.
	ErrResolution = errors.New("binding: resolution failed")
	// ErrUseAfterDispose is returned by operations on a disposed node.
	ErrUseAfterDispose = errors.New("binding: use after dispose")
	// ErrForeignGoroutine is the panic value of the strict goroutine check.
	ErrForeignGoroutine = errors.New("binding: used from a foreign goroutine")
)

// ResolutionError reports a resolver that panicked or returned an observable
// breaking its contract.
type ResolutionError struct {
	Path  string
	Value any
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("binding: resolving %s from %v: %v", e.Path, e.Value, e.Cause)
}

func (e *ResolutionError) Unwrap() []error {
	return []error{ErrResolution, e.Cause}
}

var errCycle = errors.New("resolver returned a node of its own chain")
