package utils

import (
	"maps"
	"slices"
)

// GetKeys returns the keys of m in ascending order.
func GetKeys[K ~string, T any](m map[K]T) []K {
	return slices.Sorted(maps.Keys(m))
}
