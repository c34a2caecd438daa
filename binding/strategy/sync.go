package strategy

import (
	"fmt"

	"github.com/delaneyj/rewire/cell"
)

// Sync keeps a target and the resolved cell equal in both directions. When a
// new pairing is made the target's value wins; an absent target takes the
// resolved cell's value instead.
//
// With ResetTo the target is reset when the chain breaks and on Dispose, not
// when one resolved cell is replaced by another.
type Sync[T any] struct {
	target   target[T]
	opts     options[T]
	source   source[T]
	unpair   cell.Unsubscribe
	syncing  bool
	disposed bool
}

func NewSync[T any](w cell.Writable[T], opts ...Option[T]) (*Sync[T], error) {
	t, err := newTarget(w)
	if err != nil {
		return nil, err
	}
	return &Sync[T]{target: t, opts: applyOptions(opts)}, nil
}

func (s *Sync[T]) Compute(resolved cell.Observable[T]) error {
	if s.disposed {
		return nil
	}
	t, ok := s.target.get()
	if !ok {
		return s.Dispose()
	}
	if s.source.is(resolved) {
		return nil
	}

	s.release()
	if cell.IsNil(resolved) {
		return s.opts.resetTarget(t)
	}
	w, ok := resolved.(cell.Writable[T])
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotWritable, resolved)
	}

	s.source.bind(resolved, s.onResolvedChanged)
	s.unpair = t.Subscribe(s.onTargetChanged)

	if v, ok := t.Value(); ok {
		return s.copy(w, v, true)
	}
	v, ok := w.Value()
	return s.copy(t, v, ok)
}

func (s *Sync[T]) copy(dst cell.Writable[T], v T, ok bool) error {
	if s.syncing {
		return nil
	}
	s.syncing = true
	defer func() {
		s.syncing = false
	}()
	return copyValue(dst, v, ok)
}

func (s *Sync[T]) onResolvedChanged(_, _ T) error {
	if s.disposed || s.syncing {
		return nil
	}
	src, ok := s.source.get()
	if !ok {
		return nil
	}
	t, ok := s.target.get()
	if !ok {
		return s.Dispose()
	}
	v, ok := src.Value()
	return s.copy(t, v, ok)
}

func (s *Sync[T]) onTargetChanged(_, _ T) error {
	if s.disposed || s.syncing {
		return nil
	}
	src, ok := s.source.get()
	if !ok {
		return nil
	}
	w, ok := src.(cell.Writable[T])
	if !ok {
		return nil
	}
	t, ok := s.target.get()
	if !ok {
		return s.Dispose()
	}
	v, ok := t.Value()
	return s.copy(w, v, ok)
}

func (s *Sync[T]) release() {
	s.source.unbind()
	if s.unpair != nil {
		s.unpair()
		s.unpair = nil
	}
}

func (s *Sync[T]) Disposed() bool {
	return s.disposed
}

func (s *Sync[T]) Dispose() error {
	if s.disposed {
		return nil
	}
	s.disposed = true
	s.release()

	t, ok := s.target.get()
	s.target = target[T]{}
	if !ok {
		return nil
	}
	return s.opts.resetTarget(t)
}
