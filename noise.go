package slides3d

import (
	"github.com/ojrac/opensimplex-go"
)

// NoiseField is a deterministic source of smooth noise for 1 to 4 coordinates. Samples range from -1 to 1,
// and the same seed always gives the same field.
type NoiseField struct {
	noise opensimplex.Noise
}

// NewNoiseField creates a new NoiseField for the seed given.
func NewNoiseField(seed int64) *NoiseField {
	return &NoiseField{noise: opensimplex.New(seed)}
}

// Sample samples the field. A single coordinate is read as 2D noise at (0, x). Passing no coordinates or more than four panics.
func (nf *NoiseField) Sample(coords ...float64) float64 {

	var v float64

	switch len(coords) {
	case 1:
		v = nf.noise.Eval2(0, coords[0])
	case 2:
		v = nf.noise.Eval2(coords[0], coords[1])
	case 3:
		v = nf.noise.Eval3(coords[0], coords[1], coords[2])
	case 4:
		v = nf.noise.Eval4(coords[0], coords[1], coords[2], coords[3])
	default:
		panic("slides3d: NoiseField.Sample takes between 1 and 4 coordinates")
	}

	return clamp(v, -1, 1)

}
