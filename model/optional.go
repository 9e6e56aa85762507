package model

import "reflect"

// Optional holds a value that may be absent. The zero value is unset.
type Optional[T any] struct {
	v  T
	ok bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{v: v, ok: true} }

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) { return o.v, o.ok }

// Value returns the value, or the zero value when unset.
func (o Optional[T]) Value() T { return o.v }

// Or returns the value when set and def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool { return o.ok }

// Set stores v.
func (o *Optional[T]) Set(v T) { o.v, o.ok = v, true }

// Clear unsets the value.
func (o *Optional[T]) Clear() {
	var zero T
	o.v, o.ok = zero, false
}

// Interface returns the held value as any, or nil when unset.
func (o Optional[T]) Interface() any {
	if !o.ok {
		return nil
	}
	return o.v
}

// ElemType returns the reflect type of T.
func (o Optional[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

// SetInterface stores v, which must be a T.
func (o *Optional[T]) SetInterface(v any) { o.Set(v.(T)) }

// OptionalValue is implemented by *Optional[T]. The codec uses it to read and
// write optional fields without knowing T.
type OptionalValue interface {
	IsSet() bool
	Interface() any
	ElemType() reflect.Type
	SetInterface(v any)
	Clear()
}

var _ OptionalValue = (*Optional[int])(nil)
