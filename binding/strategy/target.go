package strategy

import "github.com/delaneyj/rewire/cell"

// target is a non-owning handle to a writable cell.
type target[T any] struct {
	ref cell.WeakRef[T]
}

func newTarget[T any](w cell.Writable[T]) (target[T], error) {
	if cell.IsNil(w) {
		return target[T]{}, ErrNilTarget
	}
	return target[T]{ref: cell.WeakOf[T](w)}, nil
}

func (t target[T]) get() (cell.Writable[T], bool) {
	if t.ref == nil {
		return nil, false
	}
	o, ok := t.ref()
	if !ok {
		return nil, false
	}
	w, ok := o.(cell.Writable[T])
	return w, ok
}

// source is a non-owning subscription to the resolved cell.
type source[T any] struct {
	ref         cell.WeakRef[T]
	unsubscribe cell.Unsubscribe
}

func (s *source[T]) bind(c cell.Observable[T], fn cell.Listener[T]) {
	s.unbind()
	if cell.IsNil(c) {
		return
	}
	s.ref = cell.WeakOf(c)
	s.unsubscribe = c.Subscribe(fn)
}

func (s *source[T]) unbind() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.ref, s.unsubscribe = nil, nil
}

func (s *source[T]) get() (cell.Observable[T], bool) {
	if s.ref == nil {
		return nil, false
	}
	return s.ref()
}

// is reports whether s is bound to c. Two unbound sources compare equal.
func (s *source[T]) is(c cell.Observable[T]) bool {
	cur, ok := s.get()
	if !ok {
		return s.ref == nil && cell.IsNil(c)
	}
	return cell.Same(cur, c)
}

func copyValue[T any](dst cell.Writable[T], v T, ok bool) error {
	if ok {
		return dst.SetValue(v)
	}
	return dst.Clear()
}
