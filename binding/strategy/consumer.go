package strategy

import "github.com/delaneyj/rewire/cell"

// Consumer hands every newly resolved cell to current, after handing the
// previously resolved one back to previous. The previous cell is only held
// weakly and is skipped when it has been reclaimed in the meantime.
type Consumer[T any] struct {
	previous func(cell.Observable[T])
	current  func(cell.Observable[T])
	last     cell.WeakRef[T]
	disposed bool
}

// NewConsumer requires current. previous may be nil.
func NewConsumer[T any](previous, current func(cell.Observable[T])) (*Consumer[T], error) {
	if current == nil {
		return nil, ErrNilFunc
	}
	return &Consumer[T]{previous: previous, current: current}, nil
}

func (c *Consumer[T]) Compute(resolved cell.Observable[T]) error {
	if c.disposed {
		return nil
	}
	last, ok := c.lastResolved()
	if ok && cell.Same(last, resolved) {
		return nil
	}
	if !ok && cell.IsNil(resolved) {
		return nil
	}

	c.last = nil
	if ok && c.previous != nil {
		c.previous(last)
	}
	if !cell.IsNil(resolved) {
		c.current(resolved)
		c.last = cell.WeakOf(resolved)
	}
	return nil
}

func (c *Consumer[T]) lastResolved() (cell.Observable[T], bool) {
	if c.last == nil {
		return nil, false
	}
	return c.last()
}

func (c *Consumer[T]) Disposed() bool {
	return c.disposed
}

// Dispose hands the last resolved cell, if still reachable, to previous one
// final time.
func (c *Consumer[T]) Dispose() error {
	if c.disposed {
		return nil
	}
	c.disposed = true

	last, ok := c.lastResolved()
	c.last = nil
	if ok && c.previous != nil {
		c.previous(last)
	}
	return nil
}
