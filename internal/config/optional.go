package config

import "fmt"

// Optional holds a value that is either set or explicitly unset.
// The zero value is unset.
type Optional[T any] struct {
	v  T
	ok bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{v: v, ok: true} }

// None returns an unset Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) { return o.v, o.ok }

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool { return o.ok }

// OrElse returns the value if set, else def.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

func (o Optional[T]) String() string {
	if !o.ok {
		return "<unset>"
	}
	return fmt.Sprint(o.v)
}
