package binding

import "github.com/delaneyj/rewire/cell"

// observation is a non-owning subscription to a single observable. Staleness
// is only noticed when resolve is called.
type observation[T any] struct {
	ref         cell.WeakRef[T]
	strong      cell.Observable[T]
	unsubscribe cell.Unsubscribe
	stale       bool
}

func (o *observation[T]) observe(c cell.Observable[T], fn cell.Listener[T], strong bool) {
	o.unobserve()
	if cell.IsNil(c) {
		return
	}

	o.ref = cell.WeakOf(c)
	if strong {
		o.strong = c
	}
	o.unsubscribe = c.Subscribe(fn)
}

// unobserve is a no-op on the observed cell once it has been reclaimed.
func (o *observation[T]) unobserve() {
	if o.unsubscribe != nil {
		o.unsubscribe()
	}
	o.ref = nil
	o.strong = nil
	o.unsubscribe = nil
	o.stale = false
}

func (o *observation[T]) resolve() (cell.Observable[T], bool) {
	if o.ref == nil {
		return nil, false
	}
	c, ok := o.ref()
	if !ok {
		o.stale = true
		return nil, false
	}
	return c, true
}

func (o *observation[T]) bound() bool {
	return o.ref != nil
}
