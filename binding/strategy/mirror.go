package strategy

import "github.com/delaneyj/rewire/cell"

// Mirror copies the resolved cell into a target, one way. When the chain
// breaks the target keeps the last mirrored value unless ResetTo was given.
type Mirror[T any] struct {
	target   target[T]
	opts     options[T]
	source   source[T]
	disposed bool
}

func NewMirror[T any](w cell.Writable[T], opts ...Option[T]) (*Mirror[T], error) {
	t, err := newTarget(w)
	if err != nil {
		return nil, err
	}
	return &Mirror[T]{target: t, opts: applyOptions(opts)}, nil
}

func (m *Mirror[T]) Compute(resolved cell.Observable[T]) error {
	if m.disposed {
		return nil
	}
	t, ok := m.target.get()
	if !ok {
		return m.Dispose()
	}
	if m.source.is(resolved) {
		return nil
	}

	m.source.unbind()
	if cell.IsNil(resolved) {
		return m.opts.resetTarget(t)
	}
	m.source.bind(resolved, m.onSourceChanged)
	v, ok := resolved.Value()
	return copyValue(t, v, ok)
}

func (m *Mirror[T]) onSourceChanged(_, _ T) error {
	if m.disposed {
		return nil
	}
	src, ok := m.source.get()
	if !ok {
		return nil
	}
	t, ok := m.target.get()
	if !ok {
		return m.Dispose()
	}
	v, ok := src.Value()
	return copyValue(t, v, ok)
}

func (m *Mirror[T]) Disposed() bool {
	return m.disposed
}

func (m *Mirror[T]) Dispose() error {
	if m.disposed {
		return nil
	}
	m.disposed = true
	m.source.unbind()

	t, ok := m.target.get()
	m.target = target[T]{}
	if !ok {
		return nil
	}
	return m.opts.resetTarget(t)
}
