package utils

import "math"

// Progress is amount/target, or 0 when the ratio is undefined.
func Progress(amount, target float64) float64 {
	if !finite(amount) || !finite(target) || target <= 0 {
		return 0
	}
	r := amount / target
	if !finite(r) {
		return 0
	}
	return r
}

// ClampedProgress is Progress bounded to 0..1, for rings and bars.
func ClampedProgress(amount, target float64) float64 {
	p := Progress(amount, target)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
