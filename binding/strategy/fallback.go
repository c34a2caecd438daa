package strategy

import "github.com/delaneyj/rewire/cell"

// Fallback exposes fn applied to the value of the resolved cell. It is a pure
// read-side substitution: nothing it observes is ever written.
//
// fn receives ok == false when the chain is broken or the resolved cell holds
// no usable value.
type Fallback[T any] struct {
	fn       func(v T, ok bool) T
	out      *cell.Cell[T]
	source   source[T]
	disposed bool
}

func NewFallback[T any](fn func(v T, ok bool) T) (*Fallback[T], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	return &Fallback[T]{fn: fn, out: cell.New[T]()}, nil
}

// OrElse is the common Fallback substituting def for a missing value.
func OrElse[T any](def T) *Fallback[T] {
	f, _ := NewFallback(func(v T, ok bool) T {
		if ok {
			return v
		}
		return def
	})
	return f
}

func (f *Fallback[T]) Compute(resolved cell.Observable[T]) error {
	if f.disposed {
		return nil
	}
	if !f.source.is(resolved) {
		f.source.bind(resolved, f.onSourceChanged)
	}
	return f.update()
}

func (f *Fallback[T]) onSourceChanged(_, _ T) error {
	if f.disposed {
		return nil
	}
	return f.update()
}

func (f *Fallback[T]) update() error {
	var v T
	var ok bool
	if src, live := f.source.get(); live {
		v, ok = src.Value()
	}
	return f.out.SetValue(f.fn(v, cell.Present(v, ok)))
}

// Value returns the substituted value. It is absent only before the first
// Compute and after Dispose.
func (f *Fallback[T]) Value() (T, bool) {
	return f.out.Value()
}

func (f *Fallback[T]) Get() T {
	return f.out.Get()
}

func (f *Fallback[T]) Subscribe(fn cell.Listener[T]) cell.Unsubscribe {
	return f.out.Subscribe(fn)
}

func (f *Fallback[T]) Disposed() bool {
	return f.disposed
}

func (f *Fallback[T]) Dispose() error {
	if f.disposed {
		return nil
	}
	f.disposed = true
	f.source.unbind()
	f.out.Close()
	return nil
}
