// Package collection provides small generic slice helpers used by the
// service layer.
package collection

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	var out []T
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Flatten concatenates a slice of slices into one slice, preserving order.
func Flatten[T any](s [][]T) []T {
	n := 0
	for _, inner := range s {
		n += len(inner)
	}
	out := make([]T, 0, n)
	for _, inner := range s {
		out = append(out, inner...)
	}
	return out
}

// Contains reports whether s has an element equal to v.
func Contains[T comparable](s []T, v T) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
