package utils

import "golang.org/x/exp/constraints"

// Min returns the smaller of the two given values.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of the two given values.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
