package common

import "math"

// MoveToward moves from toward to by at most delta without overshooting.
func MoveToward(from, to, delta float64) float64 {
	if math.Abs(to-from) <= delta {
		return to
	}
	if to > from {
		return from + delta
	}
	return from - delta
}

func AbsInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
