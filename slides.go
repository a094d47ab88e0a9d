package slides3d

import (
	"context"
	"errors"
)

// SlidesInterval is the time between a slide starting to leave and the next one starting to arrive, in seconds.
const SlidesInterval = 0.8

// pointerDepth is the depth of the plane pointer positions are mapped onto, just in front of the resting instances.
const pointerDepth = -0.1

// Direction is the way a SlideSet is navigated.
type Direction int

const (
	Prev Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// SlideSetConfig configures a SlideSet.
type SlideSetConfig struct {
	Variant Variant
	Images  []Descriptor // Slide images, in order. The first one must already be loaded in the Library.
	LeafKey string       // Library key of the leaf model spiral slides are made of; it must already be loaded.

	Camera   *Camera
	Library  *Library
	Controls *Controls
	Noise    *NoiseField
	Sampler  *PointSampler

	// Reversed swaps the directions slides leave and arrive from, so that going forward plays the animations backwards.
	Reversed bool

	FrameIndependent bool
	Runtime          RuntimeConfig
}

type slideSlot struct {
	desc    Descriptor
	slide   *Slide
	loading <-chan LoadResult

	entryTask TaskID
	// Set when the slot was navigated to before its slide loaded; the entry plays once it does.
	deferred     bool
	deferredFrom float64
}

func (slot *slideSlot) loaded() bool {
	return slot.slide != nil
}

// SlideSet is a carousel of slides. The first slide is shown right away while the others load in the background; navigating
// sends the active slide out and brings the next one in after SlidesInterval.
// All of its methods must be called from the frame thread.
type SlideSet struct {
	cfg       SlideSetConfig
	slots     []*slideSlot
	active    int
	scheduler *Scheduler
	leaf      *Mesh

	pointer    Vector
	hasPointer bool

	previousResize func(camera *Camera)
}

// NewSlideSet builds the first slide and starts its entering animation, and starts loading the other images. The loads stop
// when ctx is cancelled.
func NewSlideSet(ctx context.Context, cfg SlideSetConfig) (*SlideSet, error) {

	if len(cfg.Images) == 0 {
		return nil, errors.New("slide set: no images")
	}

	if cfg.Camera == nil || cfg.Library == nil || cfg.Controls == nil {
		return nil, errors.New("slide set: camera, library and controls are required")
	}

	set := &SlideSet{
		cfg:       cfg,
		scheduler: NewScheduler(),
	}

	if cfg.Variant == VariantSpiral {
		leaf, err := cfg.Library.Get(cfg.LeafKey)
		if err != nil {
			return nil, err
		}
		if leaf.Mesh == nil {
			return nil, ErrEmptyMesh
		}
		set.leaf = PrepareLeafMesh(leaf.Mesh)
	}

	first, err := cfg.Library.Get(cfg.Images[0].Key())
	if err != nil {
		return nil, err
	}

	for _, desc := range cfg.Images {
		set.slots = append(set.slots, &slideSlot{desc: desc})
	}

	set.slots[0].slide, err = set.buildSlide(first)
	if err != nil {
		return nil, err
	}

	set.slots[0].slide.Controller.AnimateTo(0.5)

	for _, slot := range set.slots[1:] {
		slot.loading = cfg.Library.LoadSingle(ctx, slot.desc)
	}

	callbacks := cfg.Camera.Callbacks()
	set.previousResize = callbacks.OnResize
	callbacks.OnResize = func(camera *Camera) {
		if set.previousResize != nil {
			set.previousResize(camera)
		}
		for _, slide := range set.Slides() {
			slide.Binding.Resize(camera)
		}
	}

	return set, nil

}

func (set *SlideSet) buildSlide(asset Asset) (*Slide, error) {

	if asset.Image == nil {
		return nil, &AssetNotReadyError{Key: asset.Key()}
	}

	return NewSlide(SlideConfig{
		Variant:          set.cfg.Variant,
		Camera:           set.cfg.Camera,
		Image:            asset.Image,
		Mesh:             set.leaf,
		Controls:         set.cfg.Controls,
		Noise:            set.cfg.Noise,
		Sampler:          set.cfg.Sampler,
		FrameIndependent: set.cfg.FrameIndependent,
		Clock:            set.scheduler.Now,
		Runtime:          set.cfg.Runtime,
	})

}

// Len returns the number of slides in the cycle, loaded or not.
func (set *SlideSet) Len() int {
	return len(set.slots)
}

// ActiveIndex returns the index of the active slot.
func (set *SlideSet) ActiveIndex() int {
	return set.active
}

// Active returns the active slide, or nil if it hasn't loaded yet.
func (set *SlideSet) Active() *Slide {
	return set.slots[set.active].slide
}

// Slides returns the loaded slides, in order.
func (set *SlideSet) Slides() []*Slide {
	slides := make([]*Slide, 0, len(set.slots))
	for _, slot := range set.slots {
		if slot.loaded() {
			slides = append(slides, slot.slide)
		}
	}
	return slides
}

// Scheduler returns the scheduler that plays the delayed entries.
func (set *SlideSet) Scheduler() *Scheduler {
	return set.scheduler
}

func (set *SlideSet) extremes(dir Direction) (exit, entry float64) {
	forward := dir == Next
	if set.cfg.Reversed {
		forward = !forward
	}
	if forward {
		return 1, 0
	}
	return 0, 1
}

// Navigate sends the active slide out and schedules the next (or previous) one to come in, wrapping around the ends.
func (set *SlideSet) Navigate(dir Direction) {

	if len(set.slots) < 2 {
		return
	}

	exit, entry := set.extremes(dir)

	current := set.slots[set.active]
	set.cancelEntry(current)

	if current.loaded() {
		current.slide.Controller.AnimateTo(exit)
	}

	step := 1
	if dir == Prev {
		step = -1
	}

	set.active = (set.active + step + len(set.slots)) % len(set.slots)

	if set.cfg.Runtime.Debug {
		set.cfg.Runtime.logger().Debug("navigating", "direction", dir, "slide", set.active)
	}

	set.enter(set.slots[set.active], entry)

}

func (set *SlideSet) cancelEntry(slot *slideSlot) {
	set.scheduler.Cancel(slot.entryTask)
	slot.entryTask = 0
	slot.deferred = false
}

func (set *SlideSet) enter(slot *slideSlot, from float64) {

	set.cancelEntry(slot)

	if !slot.loaded() {
		slot.deferred = true
		slot.deferredFrom = from
		return
	}

	controller := slot.slide.Controller
	controller.MoveTo(from)
	slot.entryTask = set.scheduler.After(SlidesInterval, func() {
		slot.entryTask = 0
		controller.AnimateTo(0.5)
	})

}

// PointerMove records the pointer's position on screen, in pixels. Every slide's paths get pushed away from it.
func (set *SlideSet) PointerMove(x, y float64) {
	set.pointer = set.cfg.Camera.ScreenToPlane(x, y, pointerDepth)
	set.hasPointer = true
	for _, slide := range set.Slides() {
		slide.Controller.RecordPointer(set.pointer)
	}
}

// Update attaches the slides that finished loading, runs the due entries, and advances every slide's animation.
// dt is the time since the last Update and elapsed the time since the start, both in seconds.
func (set *SlideSet) Update(dt, elapsed float64) {

	set.cfg.Controls.Update()

	set.pollLoads()

	set.scheduler.Update(elapsed)

	for _, slide := range set.Slides() {
		slide.Controller.Update(dt, elapsed)
	}

}

func (set *SlideSet) pollLoads() {

	for i := 0; i < len(set.slots); i++ {

		slot := set.slots[i]

		if slot.loading == nil {
			continue
		}

		var result LoadResult
		select {
		case r, ok := <-slot.loading:
			if !ok {
				slot.loading = nil
				continue
			}
			result = r
		default:
			continue
		}

		slot.loading = nil

		var err error
		if result.Err == nil {
			slot.slide, err = set.buildSlide(result.Asset)
		} else {
			err = result.Err
		}

		if err != nil {
			set.cfg.Runtime.logger().Error("dropping slide", "url", slot.desc.URL, "err", err)
			set.removeSlot(i)
			i--
			continue
		}

		if set.hasPointer {
			slot.slide.Controller.RecordPointer(set.pointer)
		}

		if slot.deferred {
			set.enter(slot, slot.deferredFrom)
		}

	}

}

func (set *SlideSet) removeSlot(index int) {

	removed := set.slots[index]
	set.slots = append(set.slots[:index], set.slots[index+1:]...)

	if index < set.active {
		set.active--
		return
	}

	if index == set.active {
		set.active %= len(set.slots)
		if removed.deferred {
			set.enter(set.slots[set.active], removed.deferredFrom)
		}
	}

}

// Close removes the control subscriptions of every slide and hands the camera's resize callback back to whoever had it before.
func (set *SlideSet) Close() {
	for _, slide := range set.Slides() {
		slide.Close()
	}
	set.cfg.Camera.Callbacks().OnResize = set.previousResize
}
