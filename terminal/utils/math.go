package utils

// Clamp bounds v into [lo, hi]. lo must not exceed hi.
func Clamp(v, lo, hi int) int {
	Assert(lo <= hi)
	return max(lo, min(v, hi))
}
