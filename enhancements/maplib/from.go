package maplib

import (
	"cmp"
	"slices"
)

func FromSliceFunc[K comparable, S ~[]E, E any](s S, fn func(index int, value E) K) map[K]E {
	if len(s) == 0 {
		return make(map[K]E)
	}

	ret := make(map[K]E, len(s))

	for i, v := range s {
		k := fn(i, v)
		ret[k] = v
	}
	return ret
}

func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
