package utils

// SafeSlice returns a copy of at most max leading elements of slice.
func SafeSlice[T any](slice []T, max int) []T {
	if max < 0 {
		max = 0
	}
	if len(slice) < max {
		max = len(slice)
	}
	out := make([]T, max)
	copy(out, slice[:max])
	return out
}
