package slides3d

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slideSetHarness drives a SlideSet with a simulated frame clock while its images load from memory.
type slideSetHarness struct {
	t       *testing.T
	set     *SlideSet
	camera  *Camera
	elapsed float64
}

const harnessDT = 1.0 / 20

func newSlideSetHarness(t *testing.T, variant Variant, urls []string, open func(url string) (io.ReadCloser, error)) *slideSetHarness {
	t.Helper()

	lib := NewLibrary(RuntimeConfig{})
	lib.Open = open

	images := []Descriptor{}
	for _, url := range urls {
		images = append(images, NewDescriptor(url))
	}

	lib.Queue(images[0])

	leafKey := ""
	if variant == VariantSpiral {
		leafKey = lib.Queue(NewDescriptor("leaf.gltf"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, lib.Load(ctx))

	camera := newTestCamera()

	set, err := NewSlideSet(ctx, SlideSetConfig{
		Variant:  variant,
		Images:   images,
		LeafKey:  leafKey,
		Camera:   camera,
		Library:  lib,
		Controls: NewControls(DefaultControlValues()),
		Noise:    NewNoiseField(11),
		Sampler:  NewPointSampler(11, RuntimeConfig{}),
	})
	require.NoError(t, err)
	t.Cleanup(set.Close)

	return &slideSetHarness{t: t, set: set, camera: camera}
}

func (h *slideSetHarness) step() {
	h.elapsed += harnessDT
	h.set.Update(harnessDT, h.elapsed)
}

// advance runs frames covering the time given.
func (h *slideSetHarness) advance(seconds float64) {
	for end := h.elapsed + seconds; h.elapsed < end; {
		h.step()
	}
}

// waitForSlides runs frames until the number of loaded slides is count.
func (h *slideSetHarness) waitForSlides(count int) {
	h.t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for len(h.set.Slides()) != count {
		require.True(h.t, time.Now().Before(deadline), "timed out waiting for %d slides, have %d", count, len(h.set.Slides()))
		time.Sleep(5 * time.Millisecond)
		h.step()
	}
}

// waitForLen runs frames until the SlideSet holds count slots.
func (h *slideSetHarness) waitForLen(count int) {
	h.t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for h.set.Len() != count {
		require.True(h.t, time.Now().Before(deadline), "timed out waiting for %d slots, have %d", count, h.set.Len())
		time.Sleep(5 * time.Millisecond)
		h.step()
	}
}

func assertPositions(t *testing.T, slide *Slide, expected float64) {
	t.Helper()
	for i, p := range slide.Controller.Positions() {
		if p != expected {
			t.Fatalf("instance %d is at %f, expected %f", i, p, expected)
		}
	}
}

func memoryOpener(t *testing.T, gates map[string]chan struct{}, failing ...string) func(url string) (io.ReadCloser, error) {
	data := testPNG(t, 8, 6)
	return func(url string) (io.ReadCloser, error) {
		if gate, ok := gates[url]; ok {
			<-gate
		}
		for _, f := range failing {
			if url == f {
				return nil, errors.New("not found")
			}
		}
		if strings.HasSuffix(url, ".gltf") {
			return io.NopCloser(strings.NewReader(testTriangleGLTF)), nil
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

func TestSlideSetNavigateBeforeLoad(t *testing.T) {

	releaseB := make(chan struct{})

	h := newSlideSetHarness(t, VariantNoise, []string{"a.png", "b.png", "c.png"},
		memoryOpener(t, map[string]chan struct{}{"b.png": releaseB}))

	set := h.set

	// The first slide is there right away, parked at the start and heading to rest
	require.Equal(t, 3, set.Len())
	require.Len(t, set.Slides(), 1)
	a := set.Active()
	require.NotNil(t, a)
	assertPositions(t, a, 0)
	assert.Equal(t, 0.5, a.Controller.Target())

	h.advance(4)
	assertPositions(t, a, 0.5)

	h.waitForSlides(2) // c

	// Navigating to a slide that's still loading doesn't panic, and the entry waits for it
	assert.NotPanics(t, func() { set.Navigate(Next) })
	assert.Equal(t, 1, set.ActiveIndex())
	assert.Nil(t, set.Active())
	assert.Equal(t, 1.0, a.Controller.Target())

	set.PointerMove(640, 360)

	close(releaseB)
	h.waitForSlides(3)

	b := set.Active()
	require.NotNil(t, b)

	_, hasPointer := b.Controller.Pointer()
	assert.True(t, hasPointer)

	// B starts arriving SlidesInterval after it attached
	assertPositions(t, b, 0)
	h.advance(SlidesInterval - harnessDT*2)
	assertPositions(t, b, 0)

	h.advance(6)
	assertPositions(t, b, 0.5)
	assertPositions(t, a, 1)

}

func TestSlideSetNavigateWraps(t *testing.T) {

	h := newSlideSetHarness(t, VariantNoise, []string{"a.png", "b.png"}, memoryOpener(t, nil))
	h.waitForSlides(2)

	set := h.set
	slides := set.Slides()

	set.Navigate(Prev)
	assert.Equal(t, 1, set.ActiveIndex())

	// Going backwards, the old slide leaves through the start and the new one comes from the end
	assert.Equal(t, 0.0, slides[0].Controller.Target())
	assertPositions(t, slides[1], 1)

	set.Navigate(Prev)
	assert.Equal(t, 0, set.ActiveIndex())

	// The pending entry of the slide that was left is cancelled
	assert.Equal(t, 1, set.Scheduler().Len())

	h.advance(8)
	assertPositions(t, slides[0], 0.5)
	assertPositions(t, slides[1], 0)

}

func TestSlideSetDropsFailedSlides(t *testing.T) {

	releaseBad := make(chan struct{})

	h := newSlideSetHarness(t, VariantNoise, []string{"a.png", "bad.png", "c.png"},
		memoryOpener(t, map[string]chan struct{}{"bad.png": releaseBad}, "bad.png"))

	set := h.set

	h.waitForSlides(2)
	set.Navigate(Next)
	assert.Equal(t, 1, set.ActiveIndex())

	close(releaseBad)
	h.waitForLen(2)

	// The entry moves on to the slide that took the failed one's place
	c := set.Active()
	require.NotNil(t, c)
	assert.Equal(t, 1, set.ActiveIndex())

	h.advance(8)
	assertPositions(t, c, 0.5)

}

func TestSlideSetResizesBindings(t *testing.T) {

	h := newSlideSetHarness(t, VariantNoise, []string{"a.png"}, memoryOpener(t, nil))

	binding := h.set.Active().Binding

	w, _ := binding.ScaledSize()
	assert.Less(t, w, TextureScale)

	h.camera.Resize(600, 600)

	w, _ = binding.ScaledSize()
	assert.InDelta(t, TextureScale, w, 1e-9)

	// Single slides don't navigate
	h.set.Navigate(Next)
	assert.Equal(t, 0, h.set.ActiveIndex())

}

func TestSlideSetCloseReleasesCamera(t *testing.T) {

	h := newSlideSetHarness(t, VariantNoise, []string{"a.png"}, memoryOpener(t, nil))

	binding := h.set.Active().Binding
	require.NotNil(t, h.camera.Callbacks().OnResize)

	h.set.Close()
	assert.Nil(t, h.camera.Callbacks().OnResize)

	// The closed slide no longer follows the camera
	before, _ := binding.ScaledSize()
	h.camera.Resize(600, 600)
	after, _ := binding.ScaledSize()
	assert.Equal(t, before, after)

}

func TestSlideSetReversed(t *testing.T) {

	h := newSlideSetHarness(t, VariantNoise, []string{"a.png", "b.png"}, memoryOpener(t, nil))
	h.waitForSlides(2)

	set := h.set
	set.cfg.Reversed = true
	slides := set.Slides()

	// Going forwards, the old slide leaves through the start and the new one comes from the end
	set.Navigate(Next)
	assert.Equal(t, 1, set.ActiveIndex())
	assert.Equal(t, 0.0, slides[0].Controller.Target())
	assertPositions(t, slides[1], 1)

	h.advance(8)
	assertPositions(t, slides[0], 0)
	assertPositions(t, slides[1], 0.5)

	set.Navigate(Prev)
	assert.Equal(t, 0, set.ActiveIndex())
	assert.Equal(t, 1.0, slides[1].Controller.Target())
	assertPositions(t, slides[0], 0)

	h.advance(8)
	assertPositions(t, slides[0], 0.5)
	assertPositions(t, slides[1], 1)

}

func TestSlideSetSpiral(t *testing.T) {

	h := newSlideSetHarness(t, VariantSpiral, []string{"a.png", "b.png"}, memoryOpener(t, nil))

	active := h.set.Active()
	require.NotNil(t, active)
	assert.Equal(t, VariantSpiral, active.Variant)
	assert.Equal(t, 1, active.Mesh.TriangleCount())

	h.waitForSlides(2)
	h.set.Navigate(Next)
	h.advance(8)

	assertPositions(t, active, 1)
	assertPositions(t, h.set.Active(), 0.5)

}

func TestSlideSetErrors(t *testing.T) {

	lib := NewLibrary(RuntimeConfig{})
	lib.Open = memoryOpener(t, nil)

	cfg := SlideSetConfig{
		Variant:  VariantNoise,
		Images:   []Descriptor{NewDescriptor("a.png")},
		Camera:   newTestCamera(),
		Library:  lib,
		Controls: NewControls(DefaultControlValues()),
	}

	// The first image has to be loaded up front
	_, err := NewSlideSet(context.Background(), cfg)
	var notReady *AssetNotReadyError
	assert.True(t, errors.As(err, &notReady))

	lib.Queue(NewDescriptor("a.png"))
	require.NoError(t, lib.Load(context.Background()))

	cfg.Variant = VariantSpiral
	cfg.LeafKey = "leaf.gltf"
	_, err = NewSlideSet(context.Background(), cfg)
	assert.True(t, errors.As(err, &notReady))

	cfg.Images = nil
	_, err = NewSlideSet(context.Background(), cfg)
	assert.Error(t, err)

}
