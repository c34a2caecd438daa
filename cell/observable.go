package cell

import "reflect"

// Listener is called with the previous and the new value of an observable.
// For an absent side the zero value is passed.
type Listener[T any] func(oldValue, newValue T) error

// Unsubscribe removes a listener. Calling it more than once is a no-op.
type Unsubscribe func()

// Observable is a readable value that can be subscribed to.
type Observable[T any] interface {
	// Value returns the current value and whether one is present.
	Value() (T, bool)

	// Subscribe registers fn to be called after every change.
	Subscribe(fn Listener[T]) Unsubscribe
}

// Writable is an Observable that can be written to.
type Writable[T any] interface {
	Observable[T]

	SetValue(v T) error
	Clear() error
}

// Liveness is implemented by observables whose lifetime is controlled by the host.
type Liveness interface {
	Alive() bool
}

// WeakRef resolves a non-owning reference. It reports false once the
// referenced observable has been reclaimed or is no longer alive.
type WeakRef[T any] func() (Observable[T], bool)

// Referent is implemented by observables that can hand out weak references to
// themselves.
type Referent[T any] interface {
	Weak() WeakRef[T]
}

// WeakOf returns a weak reference to o. Observables that do not implement
// Referent are held strongly and only their Liveness is consulted.
func WeakOf[T any](o Observable[T]) WeakRef[T] {
	if IsNil(o) {
		return func() (Observable[T], bool) { return nil, false }
	}
	if r, ok := o.(Referent[T]); ok {
		return r.Weak()
	}
	return func() (Observable[T], bool) {
		if l, ok := o.(Liveness); ok && !l.Alive() {
			return nil, false
		}
		return o, true
	}
}

// Present reports whether v is a usable value: ok is set and v is not a nil
// pointer, interface, map, chan or func.
func Present[T any](v T, ok bool) bool {
	return ok && !IsNil(v)
}

func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Equal is the default comparison used by cells. Comparable values use ==,
// everything else falls back to reflect.DeepEqual.
func Equal[T any](a, b T) bool {
	va, vb := any(a), any(b)
	if va == nil || vb == nil {
		return va == nil && vb == nil
	}
	ta := reflect.TypeOf(va)
	if ta != reflect.TypeOf(vb) {
		return false
	}
	if ta.Comparable() {
		return va == vb
	}
	return reflect.DeepEqual(va, vb)
}

// Same reports whether a and b are the same observable.
func Same[T any](a, b Observable[T]) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
