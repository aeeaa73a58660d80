package cmp

// MapEq reports whether two maps hold the same keys with equal values.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	return MapEqWith(a, b, func(x, y V) bool { return x == y })
}

// MapEqWith reports whether two maps hold the same keys, with values
// equal under eq.
func MapEqWith[K comparable, V any, W any](a map[K]V, b map[K]W, eq func(a V, b W) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}
