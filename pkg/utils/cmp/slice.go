package cmp

// test two slices have same elements in same order.
func SliceEq[T comparable](a []T, b []T) bool {
	return SliceEqWith(a, b, func(a, b T) bool { return a == b })
}

// test two slices are equal, element by element, with eq.
//
// args:
//   - a, b : slices to be compared
//   - eq : equality of each element
func SliceEqWith[T any, U any](a []T, b []U, eq func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !eq(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// test two slices have same elements, ignoring order.
func SliceContentEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}

	pool := map[T]int{}
	for _, v := range a {
		pool[v] += 1
	}
	for _, v := range b {
		rest, ok := pool[v]
		if !ok || rest <= 0 {
			return false
		}
		pool[v] = rest - 1
	}
	return true
}

// test two slices have same elements in eq, ignoring order.
//
// Each element in a is matched with at most one element in b.
func SliceContentEqWith[T any, U any](a []T, b []U, eq func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(b))
AS:
	for _, va := range a {
		for nth, vb := range b {
			if used[nth] {
				continue
			}
			if eq(va, vb) {
				used[nth] = true
				continue AS
			}
		}
		return false
	}
	return true
}
