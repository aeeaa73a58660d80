// Package slices has generic helpers missing from the standard
// library counterpart.
package slices

import (
	"sort"
)

// Map converts each element of sli with mapper, keeping order.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// MapUntilError converts each element of sli with mapper.
//
// It stops at the first error and returns (nil, that error).
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		r, err := mapper(v)
		if err != nil {
			return nil, err
		}
		ret[nth] = r
	}
	return ret, nil
}

// ToMap indexes sli by the key getkey extracts.
//
// On key collisions the later element wins.
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	m := make(map[K]T, len(sli))
	for _, v := range sli {
		m[getkey(v)] = v
	}
	return m
}

// KeysOf returns the keys of m, in no particular order.
func KeysOf[T any, K comparable](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// First returns the first element matching pred, and whether any did.
func First[T any](sli []T, pred func(T) bool) (T, bool) {
	for _, v := range sli {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Sorted returns a sorted copy of sli. The sort is not stable.
//
// less follows the contract of sort.Interface.
func Sorted[T any](sli []T, less func(a, b T) bool) []T {
	ret := make([]T, len(sli))
	copy(ret, sli)

	sort.Slice(ret, func(i, j int) bool { return less(ret[i], ret[j]) })
	return ret
}
