package slides3d

import (
	"math"

	"github.com/tanema/gween/ease"
)

// ToRadians is a helper function to easily convert degrees to radians (which is what the rotation-oriented functions use).
func ToRadians(degrees float64) float64 {
	return math.Pi * degrees / 180
}

func clamp[V float64 | int](value, min, max V) V {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

func clamp01(value float64) float64 {
	return clamp(value, 0, 1)
}

// lerp interpolates from from to to; a percent of 1 lands exactly on to.
func lerp(from, to, percent float64) float64 {
	if percent == 1 {
		return to
	}
	return from + (to-from)*percent
}

// mapRange linearly maps value from [inMin, inMax] to [outMin, outMax]. A degenerate input range maps to outMin.
func mapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	if math.Abs(inMin-inMax) < 1e-12 {
		return outMin
	}
	return (value-inMin)/(inMax-inMin)*(outMax-outMin) + outMin
}

// mapRangeClamped is mapRange with the result kept inside the output range.
func mapRangeClamped(value, inMin, inMax, outMin, outMax float64) float64 {
	v := mapRange(value, inMin, inMax, outMin, outMax)
	if outMax < outMin {
		return clamp(v, outMax, outMin)
	}
	return clamp(v, outMin, outMax)
}

// mapRangeTriple maps value piecewise: [inMin, inMid] onto [outMin, outMid] and [inMid, inMax] onto [outMid, outMax].
// inMid lands exactly on outMid.
func mapRangeTriple(value, inMin, inMid, inMax, outMin, outMid, outMax float64) float64 {
	if value < inMid {
		return mapRange(value, inMin, inMid, outMin, outMid)
	}
	return mapRange(value, inMid, inMax, outMid, outMax)
}

func easeInQuart(t float64) float64 {
	return float64(ease.InQuart(float32(t), 0, 1, 1))
}

func easeOutQuart(t float64) float64 {
	return float64(ease.OutQuart(float32(t), 0, 1, 1))
}

// easeInExpo reaches exactly 1 at t = 1; ease.InExpo stops at 0.999, which would pull resting points off their target.
func easeInExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// impulse rises quickly to 1 at x = 1/k and then decays exponentially.
func impulse(k, x float64) float64 {
	h := k * x
	return h * math.Exp(1-h)
}

// impulseMultiple repeats impulse every period.
func impulseMultiple(x, k, period float64) float64 {
	m := math.Mod(x, period)
	if m < 0 {
		m += period
	}
	return impulse(k, m)
}
