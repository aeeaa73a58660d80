// Package pointer has helpers to take addresses of values in expressions.
package pointer

func Ref[T any](t T) *T {
	return &t
}

// SafeDeref dereferences val, or returns zero-value of T when val is nil.
func SafeDeref[T any](val *T) T {
	if val == nil {
		return *new(T)
	}
	return *val
}
