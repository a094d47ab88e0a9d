package render

import (
	"math"

	"github.com/solarlune/slides3d"
)

// Light represents an interface that is fulfilled by an object that emits light, returning the color a vertex should be given its
// world-space normal.
type Light interface {
	Light(normal slides3d.Vector) (float32, float32, float32)
}

//---------------//

// AmbientLight represents an ambient light that lights every face evenly.
type AmbientLight struct {
	Color slides3d.Color
	// Energy is the overall energy of the Light. Internally, technically there's no difference between a brighter color and a
	// higher energy, but this is here for convenience.
	Energy float32
}

// NewAmbientLight returns a new AmbientLight.
func NewAmbientLight(r, g, b, energy float32) *AmbientLight {
	return &AmbientLight{
		Color:  slides3d.NewColor(r, g, b, 1),
		Energy: energy,
	}
}

// Light returns the global light level for the ambient light. It doesn't use the normal; this is just to make it adhere to the Light interface.
func (amb *AmbientLight) Light(normal slides3d.Vector) (float32, float32, float32) {
	return amb.Color.R * amb.Energy, amb.Color.G * amb.Energy, amb.Color.B * amb.Energy
}

//---------------//

// DirectionalLight represents a light shining in a single direction from infinitely far away, like the sun.
type DirectionalLight struct {
	Color  slides3d.Color
	Energy float32
	// Direction the light travels in. It's normalized when set through NewDirectionalLight.
	Direction slides3d.Vector
}

// NewDirectionalLight creates a new Directional Light with the specified RGB color and energy (assuming 1.0 energy is standard / "100%" lighting),
// shining in the direction given.
func NewDirectionalLight(r, g, b, energy float32, direction slides3d.Vector) *DirectionalLight {
	return &DirectionalLight{
		Color:     slides3d.NewColor(r, g, b, 1),
		Energy:    energy,
		Direction: direction.Unit(),
	}
}

// Light returns the R, G, and B values for the directional light given the normal provided.
func (sun *DirectionalLight) Light(normal slides3d.Vector) (float32, float32, float32) {

	diffuseFactor := float32(math.Max(-normal.Dot(sun.Direction), 0.0))

	return sun.Color.R * diffuseFactor * sun.Energy, sun.Color.G * diffuseFactor * sun.Energy, sun.Color.B * diffuseFactor * sun.Energy

}

func lightVertex(lights []Light, normal slides3d.Vector) (float32, float32, float32) {

	if len(lights) == 0 {
		return 1, 1, 1
	}

	var r, g, b float32
	for _, light := range lights {
		lr, lg, lb := light.Light(normal)
		r += lr
		g += lg
		b += lb
	}

	return min(r, 1), min(g, 1), min(b, 1)

}
