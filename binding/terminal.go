package binding

import (
	"fmt"

	"github.com/delaneyj/rewire/binding/strategy"
	"github.com/delaneyj/rewire/cell"
)

// Terminal is the handle of a strategy attached to a node. The strategy is
// computed against the node's resolved cell on attach and on every change.
type Terminal[T any, S strategy.Strategy[T]] struct {
	owner    *Node[T]
	strategy S
	disposed bool
}

// Attach makes s the child of n, disposing whatever child n had before.
func Attach[T any, S strategy.Strategy[T]](n *Node[T], s S, opts ...Option) (*Terminal[T, S], error) {
	if n == nil || cell.IsNil(s) {
		return nil, fmt.Errorf("%w: nil node or strategy", ErrInvalidArgument)
	}
	if err := n.usable(); err != nil {
		return nil, err
	}

	t := &Terminal[T, S]{owner: n, strategy: s}
	if err := applyOptions(opts).scope.track(t); err != nil {
		return nil, err
	}
	return t, n.attach(t)
}

func (t *Terminal[T, S]) Strategy() S {
	return t.strategy
}

// Disposed also reports true once the strategy has torn itself down because
// its target was reclaimed.
func (t *Terminal[T, S]) Disposed() bool {
	if d, ok := any(t.strategy).(interface{ Disposed() bool }); ok && d.Disposed() {
		return true
	}
	return t.disposed
}

// Dispose detaches the strategy from its node and disposes it. The node keeps
// working without a child.
func (t *Terminal[T, S]) Dispose() error {
	if t.disposed {
		return nil
	}
	t.owner.rt.checkGoroutine()
	if t.owner.child == t {
		t.owner.child = nil
	}
	return t.dispose()
}

func (t *Terminal[T, S]) reconcile(parent *Node[T]) error {
	if t.disposed {
		return nil
	}
	resolved, _ := parent.Resolved()
	return t.strategy.Compute(resolved)
}

func (t *Terminal[T, S]) dispose() error {
	if t.disposed {
		return nil
	}
	t.disposed = true
	return t.strategy.Dispose()
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}

// MirrorTo keeps target equal to the node's resolved cell.
func (n *Node[T]) MirrorTo(target cell.Writable[T], opts ...strategy.Option[T]) (*Terminal[T, *strategy.Mirror[T]], error) {
	m, err := strategy.NewMirror(target, opts...)
	if err != nil {
		return nil, invalid(err)
	}
	return Attach(n, m)
}

// SyncWith pairs target with the node's resolved cell in both directions.
func (n *Node[T]) SyncWith(target cell.Writable[T], opts ...strategy.Option[T]) (*Terminal[T, *strategy.Sync[T]], error) {
	s, err := strategy.NewSync(target, opts...)
	if err != nil {
		return nil, invalid(err)
	}
	return Attach(n, s)
}

// SyncWithOrFallback is SyncWith resetting target to fallback whenever the
// chain breaks.
func (n *Node[T]) SyncWithOrFallback(target cell.Writable[T], fallback T) (*Terminal[T, *strategy.Sync[T]], error) {
	return n.SyncWith(target, strategy.ResetTo(fallback))
}

// Consume calls previous with the cell the node resolved to before and
// current with the one it resolves to now.
func (n *Node[T]) Consume(previous, current func(cell.Observable[T])) (*Terminal[T, *strategy.Consumer[T]], error) {
	c, err := strategy.NewConsumer(previous, current)
	if err != nil {
		return nil, invalid(err)
	}
	return Attach(n, c)
}

// Substitute exposes fn of the resolved value through the returned terminal's
// strategy.
func (n *Node[T]) Substitute(fn func(v T, ok bool) T) (*Terminal[T, *strategy.Fallback[T]], error) {
	f, err := strategy.NewFallback(fn)
	if err != nil {
		return nil, invalid(err)
	}
	return Attach(n, f)
}
