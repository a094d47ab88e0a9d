package slides3d

import "math"

// A DelayPolicy assigns each instance a start delay (in seconds) from its resting position. delayScale multiplies the result.
type DelayPolicy interface {
	Delay(position Vector, delayScale float64) float64
}

// CenterDistance delays instances by their distance from Center, so the middle of the image moves first.
type CenterDistance struct {
	Center Vector
}

func (cd CenterDistance) Delay(position Vector, delayScale float64) float64 {
	return math.Hypot(position.X-cd.Center.X, position.Y-cd.Center.Y) * delayScale
}

// PerimeterDistance delays instances by how far they are inside of the rectangle of the given size centered on Center,
// so the outer edge moves first.
type PerimeterDistance struct {
	Center        Vector
	Width, Height float64
}

func (pd PerimeterDistance) Distance(position Vector) float64 {
	return math.Hypot(pd.Width/2, pd.Height/2) - math.Hypot(position.X-pd.Center.X, position.Y-pd.Center.Y)
}

func (pd PerimeterDistance) Delay(position Vector, delayScale float64) float64 {
	return pd.Distance(position) * delayScale
}

// NoiseDelay delays instances by smooth noise over their position, giving patchy, organic arrival waves.
type NoiseDelay struct {
	Noise     *NoiseField
	Frequency float64 // Defaults to 0.5 when left at 0.
}

func (nd NoiseDelay) Delay(position Vector, delayScale float64) float64 {
	freq := nd.Frequency
	if freq == 0 {
		freq = 0.5
	}
	return (nd.Noise.Sample(position.X*freq, position.Y*freq)*0.5 + 0.5) * delayScale
}

// Delays computes the normalized delays of all of the positions under the policy given.
func Delays(policy DelayPolicy, positions []Vector, delayScale float64) []float64 {
	delays := make([]float64, len(positions))
	for i, p := range positions {
		delays[i] = policy.Delay(p, delayScale)
	}
	return Normalize(delays)
}

// Normalize shifts delays in place so the smallest one is 0, and returns them. An empty slice is returned as-is.
func Normalize(delays []float64) []float64 {
	if len(delays) == 0 {
		return delays
	}
	minDelay := delays[0]
	for _, d := range delays[1:] {
		minDelay = math.Min(minDelay, d)
	}
	for i := range delays {
		delays[i] -= minDelay
	}
	return delays
}
