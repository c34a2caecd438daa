package cell

import (
	"errors"
	"weak"
)

var ErrClosed = errors.New("cell: closed")

type subscription[T any] struct {
	fn      Listener[T]
	removed bool
}

type change[T any] struct {
	oldValue, newValue T
}

// Cell is a mutable value holder that notifies its listeners on every change.
// A Cell starts absent unless created with Of.
//
// Writes made from inside a listener are queued and dispatched in arrival
// order once the current dispatch has finished.
type Cell[T any] struct {
	value   T
	present bool
	closed  bool
	equal   func(a, b T) bool

	subs        []*subscription[T]
	queue       []change[T]
	dispatching bool
}

type Option[T any] func(c *Cell[T])

// WithEquality replaces the comparison used to skip redundant writes.
func WithEquality[T any](equal func(a, b T) bool) Option[T] {
	return func(c *Cell[T]) {
		if equal != nil {
			c.equal = equal
		}
	}
}

// New creates an absent cell.
func New[T any](opts ...Option[T]) *Cell[T] {
	c := &Cell[T]{equal: Equal[T]}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Of creates a cell holding v.
func Of[T any](v T, opts ...Option[T]) *Cell[T] {
	c := New(opts...)
	c.value, c.present = v, true
	return c
}

func (c *Cell[T]) Value() (T, bool) {
	if c.closed {
		var zero T
		return zero, false
	}
	return c.value, c.present
}

// Get returns the value, or the zero value when absent.
func (c *Cell[T]) Get() T {
	v, _ := c.Value()
	return v
}

func (c *Cell[T]) SetValue(v T) error {
	if c.closed {
		return ErrClosed
	}
	if c.present && c.equal(c.value, v) {
		return nil
	}
	old := c.value
	c.value, c.present = v, true
	return c.notify(old, v)
}

func (c *Cell[T]) Clear() error {
	if c.closed {
		return ErrClosed
	}
	if !c.present {
		return nil
	}
	old := c.value
	var zero T
	c.value, c.present = zero, false
	return c.notify(old, zero)
}

// Update sets the value to fn applied to the current one.
func (c *Cell[T]) Update(fn func(current T, ok bool) T) error {
	v, ok := c.Value()
	return c.SetValue(fn(v, ok))
}

// Subscribe registers fn for change notifications. The returned token only
// holds the cell weakly, so keeping it around does not keep the cell alive.
func (c *Cell[T]) Subscribe(fn Listener[T]) Unsubscribe {
	if fn == nil || c.closed {
		return func() {}
	}
	s := &subscription[T]{fn: fn}
	c.subs = append(c.subs, s)

	wp := weak.Make(c)
	return func() {
		s.removed = true
		if p := wp.Value(); p != nil {
			p.remove(s)
		}
	}
}

func (c *Cell[T]) remove(s *subscription[T]) {
	for i, sub := range c.subs {
		if sub == s {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of live subscriptions.
func (c *Cell[T]) Listeners() int {
	return len(c.subs)
}

// Close marks the cell dead and drops all listeners. Weak references to a
// closed cell resolve as absent.
func (c *Cell[T]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, s := range c.subs {
		s.removed = true
	}
	c.subs = nil
	c.queue = nil
}

func (c *Cell[T]) Alive() bool {
	return !c.closed
}

func (c *Cell[T]) Weak() WeakRef[T] {
	wp := weak.Make(c)
	return func() (Observable[T], bool) {
		p := wp.Value()
		if p == nil || p.closed {
			return nil, false
		}
		return p, true
	}
}

func (c *Cell[T]) notify(oldValue, newValue T) error {
	if len(c.subs) == 0 {
		return nil
	}
	c.queue = append(c.queue, change[T]{oldValue, newValue})
	if c.dispatching {
		return nil
	}

	c.dispatching = true
	defer func() {
		c.dispatching = false
	}()

	var errs []error
	for len(c.queue) > 0 {
		ch := c.queue[0]
		c.queue = c.queue[1:]

		subs := make([]*subscription[T], len(c.subs))
		copy(subs, c.subs)
		for _, s := range subs {
			if s.removed {
				continue
			}
			if err := s.fn(ch.oldValue, ch.newValue); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
