package interp

// LinearAt returns the value at x of the line through (x0, y0) and (x1, y1).
// Points outside [x0, x1] are extrapolated. A vertical segment (x0 == x1)
// yields y1.
func LinearAt(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y1
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// Ramp writes dst[k] = LinearAt(x0, y0, x1, y1, start+k) for every k.
func Ramp(dst []float64, x0, y0, x1, y1 float64, start int) {
	if x1 == x0 {
		for k := range dst {
			dst[k] = y1
		}
		return
	}

	slope := (y1 - y0) / (x1 - x0)
	for k := range dst {
		dst[k] = y0 + slope*(float64(start+k)-x0)
	}
}
