package slides3d

import (
	"errors"
	"image"
	"math"
	"time"
)

const (
	// Depth noise paths start and end at.
	noiseStartZ = -1.0

	leafScale = 0.085
)

// Slide is one image of a SlideSet, split into instances that fly in and out together.
type Slide struct {
	Variant    Variant
	Controller *TransitionController
	Binding    *ProjectionBinding
	Image      image.Image
	Mesh       *Mesh // Shape shared by every instance

	Width, Height float64 // Size of the sampled domain, in world units
}

// SlideConfig holds what NewSlide needs to build a Slide.
type SlideConfig struct {
	Variant Variant
	Camera  *Camera // Camera the image is projected from; it should already be placed
	Image   image.Image

	// Mesh is the shape of the instances. Noise slides default to a small box; spiral slides expect the leaf model,
	// as prepared by PrepareLeafMesh.
	Mesh *Mesh

	Controls *Controls
	Noise    *NoiseField
	Sampler  *PointSampler

	FrameIndependent bool
	Clock            func() float64
	Runtime          RuntimeConfig
}

// SlideDomain returns the size of the rectangle a slide's instances rest in: the image fitted inside of the visible area of the
// camera at depth 0 (scaled down by TextureScale), made a little bigger depending on the variant.
func SlideDomain(camera *Camera, imageWidth, imageHeight int, variant Variant) (width, height float64) {

	ratio := float64(max(imageWidth, 1)) / float64(max(imageHeight, 1))

	if ratio < 1 {
		height = camera.VisibleHeightAtDepth(0) * TextureScale
		width = height * ratio
	} else {
		width = camera.VisibleWidthAtDepth(0) * TextureScale
		height = width / ratio
	}

	if variant == VariantNoise {
		return width * 1.5, height * 1.1
	}
	return width * 1.1, height * 1.1

}

// PrepareLeafMesh returns a copy of a leaf model scaled and turned to face the camera at rest.
func PrepareLeafMesh(leaf *Mesh) *Mesh {
	prepared := leaf.Clone()
	prepared.ApplyMatrix(NewMatrix4Scale(leafScale, leafScale, leafScale).Mult(NewMatrix4Rotate(0, 1, 0, math.Pi)))
	return prepared
}

// NewSlide samples the resting positions of a slide's instances, builds their paths and delays, and projects the image onto them.
// The slide starts parked at the beginning of its entering animation.
func NewSlide(cfg SlideConfig) (*Slide, error) {

	if cfg.Camera == nil {
		return nil, errors.New("slide: no camera")
	}

	if cfg.Image == nil {
		return nil, errors.New("slide: no image")
	}

	if cfg.Controls == nil {
		return nil, errors.New("slide: no controls")
	}

	if cfg.Sampler == nil {
		cfg.Sampler = NewPointSampler(time.Now().UnixNano(), cfg.Runtime)
	}

	if cfg.Noise == nil {
		cfg.Noise = NewNoiseField(0)
	}

	bounds := cfg.Image.Bounds()

	slide := &Slide{
		Variant: cfg.Variant,
		Image:   cfg.Image,
		Mesh:    cfg.Mesh,
	}

	slide.Width, slide.Height = SlideDomain(cfg.Camera, bounds.Dx(), bounds.Dy(), cfg.Variant)

	points, err := cfg.Sampler.SampleRelative(slide.Width, slide.Height)
	if err != nil {
		return nil, err
	}

	if cfg.Variant == VariantNoise {
		points = FilterWaveEdges(points, slide.Width)
	}

	points = CenterPoints(points, slide.Width, slide.Height)

	if slide.Mesh == nil {
		slide.Mesh = NewBoxMesh(0.1, 0.2, 0.1)
	}

	fallback, err := NewColorFromHexString(cfg.Controls.Values().Color)
	if err != nil {
		return nil, err
	}

	slide.Binding = NewProjectionBinding(len(points), bounds.Dx(), bounds.Dy(), fallback)
	slide.Binding.Bind(cfg.Camera)

	opts := ControllerOptions{
		Variant:          cfg.Variant,
		Points:           points,
		Binding:          slide.Binding,
		Controls:         cfg.Controls,
		Noise:            cfg.Noise,
		FrameIndependent: cfg.FrameIndependent,
		Clock:            cfg.Clock,
		Runtime:          cfg.Runtime,
	}

	switch cfg.Variant {

	case VariantSpiral:
		controls := cfg.Controls
		opts.Builder = NewSpiralPathBuilder(cfg.Camera.WorldPosition().Z, func() float64 { return controls.Values().SpiralRadius })
		opts.EntryDelay = PerimeterDistance{Width: slide.Width, Height: slide.Height}
		opts.ExitDelay = CenterDistance{}

	default:
		minX := -cfg.Camera.VisibleWidthAtDepth(noiseStartZ)/2 - slide.Width*0.6
		builder := NewNoisePathBuilder(cfg.Noise, minX)
		builder.StartZ = noiseStartZ
		opts.Builder = builder
		opts.EntryDelay = NoiseDelay{Noise: cfg.Noise}

	}

	slide.Controller, err = NewTransitionController(opts)
	if err != nil {
		return nil, err
	}

	if cfg.Runtime.Debug {
		cfg.Runtime.logger().Debug("slide built", "variant", cfg.Variant, "instances", len(points), "width", slide.Width, "height", slide.Height)
	}

	return slide, nil

}

// Close releases the slide's control subscriptions.
func (slide *Slide) Close() {
	slide.Controller.Close()
}
