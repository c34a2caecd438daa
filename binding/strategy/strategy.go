// Package strategy holds the actions run against the cell a chain currently
// resolves to.
//
// A strategy only ever holds weak references to the cells it works on. When its
// external target has been reclaimed the strategy disposes itself the next
// time it is asked to compute.
package strategy

import (
	"errors"

	"github.com/delaneyj/rewire/cell"
)

var (
	ErrNilTarget   = errors.New("strategy: nil target")
	ErrNilFunc     = errors.New("strategy: nil function")
	ErrNotWritable = errors.New("strategy: resolved cell is not writable")
)

// Strategy is run every time the resolved cell of a chain changes, with nil
// when the chain is broken.
type Strategy[T any] interface {
	Compute(resolved cell.Observable[T]) error

	// Dispose releases everything the strategy holds. It must be idempotent
	// and safe to call before Compute ever ran.
	Dispose() error
}

type options[T any] struct {
	reset    T
	hasReset bool
}

type Option[T any] func(o *options[T])

// ResetTo makes the target fall back to v whenever the chain breaks and when
// the strategy is disposed.
func ResetTo[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.reset, o.hasReset = v, true
	}
}

func applyOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// resetTarget applies the reset value, if one is configured, to t.
func (o options[T]) resetTarget(t cell.Writable[T]) error {
	if !o.hasReset {
		return nil
	}
	return t.SetValue(o.reset)
}
