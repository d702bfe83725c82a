// pkg/utils/math.go
package utils

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AtLeast returns x, or floor if x is smaller.
func AtLeast(x, floor int) int {
	if x < floor {
		return floor
	}
	return x
}
