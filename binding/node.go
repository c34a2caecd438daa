package binding

import (
	"errors"
	"fmt"
	"weak"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/rewire/cell"
)

const (
	kindRoot  = "root"
	kindRelay = "relay"
)

// child is whatever hangs below a node: a relay link to the next hop or a
// terminal strategy. A node owns at most one.
type child[T any] interface {
	// reconcile brings the child in line with the parent's current state. It
	// must be idempotent.
	reconcile(parent *Node[T]) error
	dispose() error
}

type upstream interface {
	upstreamNode() upstream
}

// Node is one hop of a chain. It observes a single cell, exposes that cell's
// value (or a fallback) and keeps its child wired to it.
//
// A Node is itself a cell.Observable, so chains can feed other chains.
type Node[T any] struct {
	rt     *Runtime
	kind   string
	path   string
	depth  int
	parent upstream
	detach func()

	observation observation[T]
	strong      bool
	fallback    T
	hasFallback bool

	child    child[T]
	out      *cell.Cell[T]
	dispatch dispatcher
	disposed bool
}

// Observe starts a chain at c. A nil or absent c is allowed; the chain simply
// stays empty until c gets a value. Observing in a scope that is already
// disposed returns a disposed node, so extending it fails with
// ErrUseAfterDispose.
func Observe[T any](c cell.Observable[T], opts ...Option) *Node[T] {
	o := applyOptions(opts)
	rt := o.runtime
	if rt == nil {
		rt = GetRuntime()
	}
	rt.checkGoroutine()

	label := o.label
	if label == "" {
		label = kindRoot
	}
	n := &Node[T]{
		rt:     rt,
		kind:   kindRoot,
		path:   label,
		strong: o.strong,
		out:    cell.New[T](),
	}
	n.observation.observe(c, n.onObservedChanged, n.strong)
	if v, ok := n.Value(); ok {
		n.out = cell.Of(v)
	}

	if err := o.scope.track(n); err != nil {
		n.rt.tracef("binding: observe %s: %v", n, err)
		_ = n.Dispose()
	}
	return n
}

func newRelay[T, U any](parent *Node[T], o options) *Node[U] {
	depth := parent.depth + 1
	label := o.label
	if label == "" {
		label = fmt.Sprint(depth)
	}
	return &Node[U]{
		rt:     parent.rt,
		kind:   kindRelay,
		path:   parent.path + "." + label,
		depth:  depth,
		parent: parent,
		strong: o.strong,
		out:    cell.New[U](),
	}
}

func (n *Node[T]) upstreamNode() upstream {
	return n.parent
}

// Value returns the live value of the resolved cell, or the fallback when no
// value is resolved. A disposed node is always absent.
func (n *Node[T]) Value() (T, bool) {
	if c, ok := n.observation.resolve(); ok {
		if v, ok := c.Value(); cell.Present(v, ok) {
			return v, true
		}
	}
	if n.hasFallback && !n.disposed {
		return n.fallback, true
	}
	var zero T
	return zero, false
}

// Get returns the value, or the zero value when absent.
func (n *Node[T]) Get() T {
	v, _ := n.Value()
	return v
}

// Subscribe registers fn for changes of the node's current value. A disposed
// node never changes again: subscribing to it registers nothing and returns a
// no-op Unsubscribe, like subscribing to a closed cell.
func (n *Node[T]) Subscribe(fn cell.Listener[T]) cell.Unsubscribe {
	return n.out.Subscribe(fn)
}

// Resolved returns the cell the node currently observes.
func (n *Node[T]) Resolved() (cell.Observable[T], bool) {
	return n.observation.resolve()
}

// Stale reports whether the observed cell was reclaimed since it was bound.
func (n *Node[T]) Stale() bool {
	n.observation.resolve()
	return n.observation.stale
}

func (n *Node[T]) Disposed() bool {
	return n.disposed
}

func (n *Node[T]) Alive() bool {
	return !n.disposed
}

// Weak lets a node be observed by another chain without being kept alive by it.
func (n *Node[T]) Weak() cell.WeakRef[T] {
	wp := weak.Make(n)
	return func() (cell.Observable[T], bool) {
		p := wp.Value()
		if p == nil || p.disposed {
			return nil, false
		}
		return p, true
	}
}

// Path is the dotted list of labels from the root to this node.
func (n *Node[T]) Path() string {
	return n.path
}

func (n *Node[T]) Depth() int {
	return n.depth
}

func (n *Node[T]) Fingerprint() uint64 {
	return xxhash.Sum64String(n.path)
}

func (n *Node[T]) String() string {
	return fmt.Sprintf("%s[%08x]:%s", n.kind, uint32(n.Fingerprint()), n.path)
}

// FallbackOn sets the value reported while nothing is resolved. It does not
// affect a resolved value.
func (n *Node[T]) FallbackOn(v T) error {
	if err := n.usable(); err != nil {
		return err
	}
	n.fallback, n.hasFallback = v, true
	return n.dispatch.run(n.refresh)
}

func (n *Node[T]) ClearFallback() error {
	if err := n.usable(); err != nil {
		return err
	}
	var zero T
	n.fallback, n.hasFallback = zero, false
	return n.dispatch.run(n.refresh)
}

// Dispose unregisters the node's observation, disposes its child and makes the
// node inert. Calling Dispose again is a no-op.
func (n *Node[T]) Dispose() error {
	if n.disposed {
		return nil
	}
	n.rt.checkGoroutine()

	n.disposed = true
	n.dispatch.drop()
	n.observation.unobserve()
	if n.detach != nil {
		n.detach()
		n.detach = nil
	}

	var err error
	if c := n.child; c != nil {
		n.child = nil
		err = c.dispose()
	}
	n.out.Close()

	n.rt.stats.Disposals++
	n.rt.tracef("binding: dispose %s", n)
	return err
}

func (n *Node[T]) usable() error {
	n.rt.checkGoroutine()
	if n.disposed {
		return fmt.Errorf("%w: %s", ErrUseAfterDispose, n)
	}
	return nil
}

// attach replaces the node's child and reconciles the new one right away, so a
// child attached below an already resolved node is wired immediately, even
// from inside one of the node's own notifications.
func (n *Node[T]) attach(c child[T]) error {
	var errs []error
	if old := n.child; old != nil {
		n.child = nil
		errs = append(errs, old.dispose())
	}
	n.child = c

	if !n.disposed && n.child == c {
		errs = append(errs, c.reconcile(n))
	}
	return errors.Join(errs...)
}

func (n *Node[T]) onObservedChanged(_, _ T) error {
	if n.disposed {
		return nil
	}
	n.rt.checkGoroutine()
	return n.dispatch.run(n.refresh)
}

// bind switches the observation to c. Binding the cell already observed is a
// no-op, as is unbinding a node that observes nothing.
func (n *Node[T]) bind(c cell.Observable[T]) error {
	if n.disposed {
		return nil
	}
	if cur, ok := n.observation.resolve(); ok && cell.Same(cur, c) {
		return nil
	}
	if cell.IsNil(c) && !n.observation.bound() {
		return nil
	}

	n.observation.observe(c, n.onObservedChanged, n.strong)
	n.rt.stats.Rewires++
	n.rt.tracef("binding: rewire %s", n)
	return n.refresh()
}

// refresh pushes the node's current state to its child and then to its
// listeners.
func (n *Node[T]) refresh() error {
	if n.disposed {
		return nil
	}
	n.rt.stats.Notifications++

	var errs []error
	if c := n.child; c != nil {
		errs = append(errs, c.reconcile(n))
	}
	if !n.disposed {
		errs = append(errs, n.publish())
	}
	return errors.Join(errs...)
}

func (n *Node[T]) publish() error {
	if v, ok := n.Value(); ok {
		return n.out.SetValue(v)
	}
	return n.out.Clear()
}
