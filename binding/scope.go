package binding

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/rewire/cell"
)

// Disposable is anything a Scope can tear down: nodes, terminals, strategies
// and other scopes.
type Disposable interface {
	Dispose() error
}

// Scope disposes a group of chains at once. Items are disposed in no
// particular order, which is safe since every Dispose is idempotent.
type Scope struct {
	items    mapset.Set[Disposable]
	disposed bool
}

func NewScope() *Scope {
	return &Scope{
		items: mapset.NewThreadUnsafeSet[Disposable](),
	}
}

// Add tracks items. Adding to a disposed scope disposes the items right away.
func (s *Scope) Add(items ...Disposable) error {
	var errs []error
	for _, d := range items {
		if cell.IsNil(d) {
			continue
		}
		if s.disposed {
			errs = append(errs, d.Dispose())
			continue
		}
		s.items.Add(d)
	}
	return errors.Join(errs...)
}

// track adds d to the scope, or fails with ErrUseAfterDispose when the scope
// is already disposed. A nil scope tracks nothing.
func (s *Scope) track(d Disposable) error {
	if err := s.usable(); err != nil {
		return err
	}
	if s != nil {
		s.items.Add(d)
	}
	return nil
}

func (s *Scope) usable() error {
	if s != nil && s.disposed {
		return fmt.Errorf("%w: scope", ErrUseAfterDispose)
	}
	return nil
}

// Remove stops tracking d without disposing it.
func (s *Scope) Remove(d Disposable) {
	s.items.Remove(d)
}

func (s *Scope) Len() int {
	return s.items.Cardinality()
}

func (s *Scope) Disposed() bool {
	return s.disposed
}

func (s *Scope) Dispose() error {
	if s.disposed {
		return nil
	}
	s.disposed = true

	items := s.items.ToSlice()
	s.items.Clear()

	var errs []error
	for _, d := range items {
		errs = append(errs, d.Dispose())
	}
	return errors.Join(errs...)
}
