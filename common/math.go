package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapRange linearly maps v from [inMin, inMax] onto [outMin, outMax] and
// clamps the result to the output range. A degenerate input range maps to outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	t := (v - inMin) / (inMax - inMin)
	out := Lerp(outMin, outMax, t)
	if outMin < outMax {
		return Clamp(out, outMin, outMax)
	}
	return Clamp(out, outMax, outMin)
}
