package binding

import (
	"errors"
	"fmt"

	"github.com/delaneyj/rewire/cell"
)

// Then extends the chain below n with a node observing whatever resolver
// returns for n's current value. Any child n already had is disposed, unless
// the scope given with InScope is already disposed: then nothing is touched.
//
// If n already has a value the resolver runs immediately. A failure of that
// first resolution is returned together with the node, which stays attached
// and retries on the next change of n.
func Then[T, U any](n *Node[T], resolver func(T) cell.Observable[U], opts ...Option) (*Node[U], error) {
	if n == nil || resolver == nil {
		return nil, fmt.Errorf("%w: nil node or resolver", ErrInvalidArgument)
	}
	if err := n.usable(); err != nil {
		return nil, err
	}
	if limit := n.rt.cfg.MaxDepth; limit > 0 && n.depth >= limit {
		return nil, fmt.Errorf("%w: %s already at max depth %d", ErrInvalidArgument, n, limit)
	}

	if err := checkOptions(opts); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	next := newRelay[T, U](n, o)
	link := &relayLink[T, U]{
		resolver: resolver,
		node:     next,
	}
	next.detach = func() {
		if n.child == link {
			n.child = nil
		}
	}
	if err := o.scope.track(next); err != nil {
		return nil, err
	}
	return next, n.attach(link)
}

// checkOptions fails when opts name a scope that is already disposed, before
// anything below the root is replaced.
func checkOptions(opts []Option) error {
	return applyOptions(opts).scope.usable()
}

// MustThen is Then for chains whose construction cannot legitimately fail.
func MustThen[T, U any](n *Node[T], resolver func(T) cell.Observable[U], opts ...Option) *Node[U] {
	next, err := Then(n, resolver, opts...)
	if err != nil {
		panic(err)
	}
	return next
}

// relayLink is the child of a node that feeds the next hop.
type relayLink[T, U any] struct {
	resolver func(T) cell.Observable[U]
	node     *Node[U]
}

func (l *relayLink[T, U]) reconcile(parent *Node[T]) error {
	node := l.node
	return node.dispatch.run(func() error {
		if node.disposed {
			return nil
		}

		v, ok := parent.Value()
		if !cell.Present(v, ok) {
			return node.bind(nil)
		}

		c, err := l.resolve(v)
		if err != nil {
			return errors.Join(err, node.bind(nil))
		}
		return node.bind(c)
	})
}

func (l *relayLink[T, U]) dispose() error {
	return l.node.Dispose()
}

func (l *relayLink[T, U]) resolve(v T) (c cell.Observable[U], err error) {
	node := l.node
	node.rt.stats.Resolutions++

	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("panic: %v", r)
			}
			c, err = nil, &ResolutionError{Path: node.path, Value: v, Cause: cause}
		}
	}()

	c = l.resolver(v)
	if cell.IsNil(c) {
		return nil, nil
	}
	if u, ok := c.(upstream); ok {
		for up := upstream(node); up != nil; up = up.upstreamNode() {
			if up == u {
				return nil, &ResolutionError{Path: node.path, Value: v, Cause: errCycle}
			}
		}
	}
	return c, nil
}
