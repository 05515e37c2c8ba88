package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// GCD returns the greatest common divisor of |a| and |b|.
// GCD(0, 0) is 0.
func GCD(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// GCDAll folds GCD over values. It returns 0 for an empty or all-zero input.
func GCDAll(values ...int) int {
	g := 0
	for _, v := range values {
		g = GCD(g, v)
		if g == 1 {
			return 1
		}
	}

	return g
}

// CeilHalf returns ceil(n/2) for non-negative n.
func CeilHalf(n int) int {
	return (n + 1) / 2
}

// IsWhole reports whether x is a finite integral value.
func IsWhole(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}

	return x == math.Trunc(x)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
