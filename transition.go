package slides3d

import (
	"errors"
	"math"
)

// Variant selects the look of a slide's transition.
type Variant int

const (
	// VariantNoise sweeps box instances in from the left along wavy paths, rippling in depth while they travel.
	VariantNoise Variant = iota
	// VariantSpiral flies leaf instances through a spiral tube from behind, fluttering as they settle.
	VariantSpiral
)

func (v Variant) String() string {
	switch v {
	case VariantNoise:
		return "noise"
	case VariantSpiral:
		return "spiral"
	}
	return "unknown"
}

const (
	// NoiseAnimationDuration is how long a single instance of a noise slide takes to travel, in seconds.
	NoiseAnimationDuration = 1.0
	// SpiralAnimationDuration is how long a single instance of a spiral slide takes to travel, in seconds.
	SpiralAnimationDuration = 1.2
	// OptimalRotation is the extra roll given to leaves at rest so they lie flat facing the camera.
	OptimalRotation = math.Pi * 0.6

	// Share of an instance's delay spent waiting before it departs in the noise variant; the rest stretches its travel time.
	noiseDelaySplit = 0.5

	pointerPushFactor  = 0.2
	pointerRelaxFactor = 0.27
	pointerPushRate    = 6.0
	pointerRelaxRate   = 8.0
	relaxThreshold     = 0.01

	// Distance from the middle of the path within which leaves still roll and flutter.
	maxRotationDistance = 0.3

	debugPathStride = 15
)

// Instance is a single box or leaf of a slide.
type Instance struct {
	Rest     Vector // Resting position on the image plane.
	Path     *Path  // Live path, displaced by the pointer and the turbulence.
	RestPath *Path  // Pristine path the live one relaxes back to.
}

// ControllerOptions configure a TransitionController.
type ControllerOptions struct {
	Variant Variant
	Points  []Vector // Resting positions, one per instance.
	Builder PathBuilder

	// EntryDelay computes the delays used while heading to the middle (0.5); ExitDelay those used otherwise.
	// ExitDelay defaults to EntryDelay.
	EntryDelay DelayPolicy
	ExitDelay  DelayPolicy

	Binding  *ProjectionBinding
	Controls *Controls
	Noise    *NoiseField // Drives the depth wave of the noise variant.

	// Duration of a single instance's travel; defaults to the variant's duration.
	Duration float64

	// FrameIndependent makes the pointer displacement ease by dt instead of by a fixed amount per frame.
	FrameIndependent bool

	// Clock returns the current time for AnimateTo. Defaults to the elapsed time of the last Update.
	Clock func() float64

	Runtime RuntimeConfig
}

// TransitionController animates every instance of a slide along its path. Each instance sits at a timeline position between 0 and 1:
// 0 is the start of the entering animation, 0.5 is at rest, and 1 is the end of the exiting one.
type TransitionController struct {
	variant          Variant
	duration         float64
	delaySplit       float64
	frameIndependent bool
	runtime          RuntimeConfig

	instances []Instance
	builder   PathBuilder

	entryPolicy, exitPolicy DelayPolicy
	entryDelays, exitDelays []float64

	perimeterDistances []float64
	rotations          []float64

	positions []float64
	previous  []float64
	target    float64
	start     float64
	started   bool

	clock   func() float64
	elapsed float64

	pointer    Vector
	hasPointer bool

	transforms []Matrix4

	binding  *ProjectionBinding
	controls *Controls
	noise    *NoiseField

	unsubscribers []func()
}

// NewTransitionController builds the paths and delays of every instance, freezes the projection of each instance at its resting pose,
// and parks all of them at the start (0).
func NewTransitionController(opts ControllerOptions) (*TransitionController, error) {

	if opts.Builder == nil {
		return nil, errors.New("transition controller: no path builder")
	}

	if opts.EntryDelay == nil {
		return nil, errors.New("transition controller: no delay policy")
	}

	if opts.Controls == nil {
		return nil, errors.New("transition controller: no controls")
	}

	if opts.Binding == nil {
		return nil, errors.New("transition controller: no projection binding")
	}

	if opts.Binding.Len() < len(opts.Points) {
		return nil, &IndexOutOfRangeError{Index: len(opts.Points) - 1, Length: opts.Binding.Len()}
	}

	if opts.Variant == VariantNoise && opts.Noise == nil {
		return nil, errors.New("transition controller: noise variant needs a noise field")
	}

	tc := &TransitionController{
		variant:          opts.Variant,
		duration:         opts.Duration,
		delaySplit:       1,
		frameIndependent: opts.FrameIndependent,
		runtime:          opts.Runtime,
		builder:          opts.Builder,
		entryPolicy:      opts.EntryDelay,
		exitPolicy:       opts.ExitDelay,
		binding:          opts.Binding,
		controls:         opts.Controls,
		noise:            opts.Noise,
		clock:            opts.Clock,
	}

	if tc.exitPolicy == nil {
		tc.exitPolicy = tc.entryPolicy
	}

	if tc.duration == 0 {
		if tc.variant == VariantSpiral {
			tc.duration = SpiralAnimationDuration
		} else {
			tc.duration = NoiseAnimationDuration
		}
	}

	if tc.variant == VariantNoise {
		tc.delaySplit = noiseDelaySplit
	}

	if tc.clock == nil {
		tc.clock = func() float64 { return tc.elapsed }
	}

	count := len(opts.Points)

	tc.instances = make([]Instance, count)
	tc.positions = make([]float64, count)
	tc.previous = make([]float64, count)
	tc.rotations = make([]float64, count)
	tc.perimeterDistances = make([]float64, count)
	tc.transforms = make([]Matrix4, count)

	var perimeter PerimeterDistance
	if pd, ok := tc.entryPolicy.(PerimeterDistance); ok {
		perimeter = pd
	} else {
		perimeter = perimeterOf(opts.Points)
	}

	for i, p := range opts.Points {

		rest := NewVector(p.X, p.Y, 0)
		restPath := tc.builder.Build(rest)

		tc.instances[i] = Instance{
			Rest:     rest,
			Path:     restPath.Clone(),
			RestPath: restPath,
		}

		tc.perimeterDistances[i] = perimeter.Distance(rest)

		if err := tc.binding.Freeze(i, tc.restingTransform(i)); err != nil {
			return nil, err
		}

		tc.transforms[i] = AlignOnPath(tc.instances[i].Path, 0)

	}

	tc.computeDelays()

	tc.unsubscribers = append(tc.unsubscribers,
		tc.controls.Subscribe(ControlDelayFactor, func(ControlValues) { tc.computeDelays() }),
		tc.controls.Subscribe(ControlColor, func(values ControlValues) {
			color, err := NewColorFromHexString(values.Color)
			if err != nil {
				tc.runtime.logger().Warn("ignoring fallback color", "err", err)
				return
			}
			tc.binding.FallbackColor = color
		}),
	)

	if tc.variant == VariantSpiral {
		tc.unsubscribers = append(tc.unsubscribers, tc.controls.Subscribe(ControlSpiralRadius, func(ControlValues) { tc.RebuildPaths() }))
	}

	return tc, nil

}

// perimeterOf returns the bounding rectangle of the points, centered on the origin.
func perimeterOf(points []Vector) PerimeterDistance {
	pd := PerimeterDistance{}
	for _, p := range points {
		pd.Width = math.Max(pd.Width, math.Abs(p.X)*2)
		pd.Height = math.Max(pd.Height, math.Abs(p.Y)*2)
	}
	return pd
}

func (tc *TransitionController) restingTransform(i int) Matrix4 {
	transform := AlignOnPath(tc.instances[i].Path, 0.5)
	if tc.variant == VariantSpiral {
		transform = transform.Rotated(0, 0, 1, OptimalRotation)
	}
	return transform
}

func (tc *TransitionController) computeDelays() {

	delayFactor := tc.controls.Values().DelayFactor

	rests := make([]Vector, len(tc.instances))
	for i, inst := range tc.instances {
		rests[i] = inst.Rest
	}

	tc.entryDelays = Delays(tc.entryPolicy, rests, delayFactor)
	tc.exitDelays = Delays(tc.exitPolicy, rests, delayFactor)

}

// RebuildPaths regenerates every instance's paths from the builder, dropping any displacement. The frozen projection is kept.
func (tc *TransitionController) RebuildPaths() {
	for i := range tc.instances {
		restPath := tc.builder.Build(tc.instances[i].Rest)
		tc.instances[i].RestPath = restPath
		tc.instances[i].Path = restPath.Clone()
	}
}

// Close removes the controller's control subscriptions.
func (tc *TransitionController) Close() {
	for _, unsubscribe := range tc.unsubscribers {
		unsubscribe()
	}
	tc.unsubscribers = nil
}

// Variant returns the variant of the controller.
func (tc *TransitionController) Variant() Variant {
	return tc.variant
}

// Len returns the number of instances.
func (tc *TransitionController) Len() int {
	return len(tc.instances)
}

// Instances returns the controller's instances.
func (tc *TransitionController) Instances() []Instance {
	return tc.instances
}

// Binding returns the projection binding of the slide.
func (tc *TransitionController) Binding() *ProjectionBinding {
	return tc.binding
}

// Transforms returns the current transform of each instance, as of the last Update. The slice is reused between frames.
func (tc *TransitionController) Transforms() []Matrix4 {
	return tc.transforms
}

// Positions returns a copy of every instance's timeline position.
func (tc *TransitionController) Positions() []float64 {
	return append([]float64(nil), tc.positions...)
}

// Target returns the timeline position the instances are heading to.
func (tc *TransitionController) Target() float64 {
	return tc.target
}

// Delays returns the delays currently in use: the entry delays when heading to the middle, the exit delays otherwise.
func (tc *TransitionController) Delays() []float64 {
	if tc.target == 0.5 {
		return tc.entryDelays
	}
	return tc.exitDelays
}

// Animating returns if any instance hasn't reached the target yet.
func (tc *TransitionController) Animating() bool {
	for _, p := range tc.positions {
		if p != tc.target {
			return true
		}
	}
	return false
}

// Visible returns if any instance is inside of the view, that is strictly between the start and the end of its path.
func (tc *TransitionController) Visible() bool {
	for _, p := range tc.positions {
		if p > 0 && p < 1 {
			return true
		}
	}
	return false
}

// MoveTo places every instance at the timeline position given (clamped to 0 to 1) right away.
func (tc *TransitionController) MoveTo(position float64) {
	position = clamp01(position)
	for i := range tc.positions {
		tc.positions[i] = position
		tc.previous[i] = position
	}
	tc.target = position
}

// AnimateTo starts animating every instance from wherever it is now to the timeline position given (clamped to 0 to 1).
// Calling it while a previous animation is running takes over from the current positions.
func (tc *TransitionController) AnimateTo(position float64) {
	tc.start = tc.clock()
	copy(tc.previous, tc.positions)
	tc.target = clamp01(position)
	tc.started = true
}

// RecordPointer stores the pointer's world position; it's used to displace the paths on the next Update.
func (tc *TransitionController) RecordPointer(point Vector) {
	tc.pointer = point
	tc.hasPointer = true
}

// Pointer returns the last recorded pointer position, and if there's one.
func (tc *TransitionController) Pointer() (Vector, bool) {
	return tc.pointer, tc.hasPointer
}

// Progress returns how far along its current animation an instance with the delay given is at the time given, from 0 to 1.
func (tc *TransitionController) Progress(delay, elapsed float64) float64 {
	denominator := tc.duration + delay*(1-tc.delaySplit)
	if denominator <= 0 || elapsed >= tc.start+tc.duration+delay {
		return 1
	}
	return clamp01((elapsed - (tc.start + delay*tc.delaySplit)) / denominator)
}

// Update advances the animation to the elapsed time given (in seconds) and recomputes every instance's transform.
// dt is the time since the last Update.
func (tc *TransitionController) Update(dt, elapsed float64) {

	tc.elapsed = elapsed

	values := tc.controls.Values()
	delays := tc.Delays()

	for i := range tc.instances {

		if tc.started {
			tc.positions[i] = lerp(tc.previous[i], tc.target, tc.Progress(delays[i], elapsed))
		}

		position := tc.positions[i]

		if position > 0 && position < 1 {

			tc.displace(i, dt, values)

			switch tc.variant {
			case VariantNoise:
				tc.wave(i, elapsed, values.Turbulence)
			case VariantSpiral:
				tc.rotations[i] = impulseMultiple((tc.perimeterDistances[i]+elapsed*values.Turbulence.Speed)*values.Turbulence.Frequency, values.Turbulence.Attenuation, 1) * values.Turbulence.Amplitude
			}

		}

		transform := AlignOnPath(tc.instances[i].Path, position)

		if tc.variant == VariantSpiral {
			fromMiddle := math.Abs(position - 0.5)
			if fromMiddle < maxRotationDistance*1.1 {
				amount := easeInExpo(mapRangeClamped(fromMiddle, 0, maxRotationDistance, 1, 0))
				transform = transform.Rotated(0, 0, 1, OptimalRotation*amount).Rotated(1, 0, 0, -tc.rotations[i]*amount)
			}
		}

		tc.transforms[i] = transform

	}

}

// displace pushes the path's points away from the pointer and relaxes them back towards their pristine positions.
func (tc *TransitionController) displace(i int, dt float64, values ControlValues) {

	if !tc.hasPointer || tc.runtime.Mobile {
		return
	}

	push, relax := pointerPushFactor, pointerRelaxFactor
	if tc.frameIndependent {
		push = math.Min(dt*pointerPushRate, 1)
		relax = math.Min(dt*pointerRelaxRate, 1)
	}

	path := tc.instances[i].Path
	restPath := tc.instances[i].RestPath

	for j, point := range path.Points {

		target := restPath.Points[j]

		if point.Distance(tc.pointer) < values.Displacement {
			direction := point.Sub(tc.pointer)
			direction = direction.SetLength(values.Displacement - direction.Magnitude()).Add(point)
			point = point.Lerp(direction, push)
		}

		if point.Distance(target) > relaxThreshold {
			point = point.Lerp(target, relax)
		}

		path.Points[j] = point

	}

}

// wave ripples the path's points in depth with noise scrolling over time.
func (tc *TransitionController) wave(i int, elapsed float64, turbulence TurbulenceControls) {

	path := tc.instances[i].Path
	restPath := tc.instances[i].RestPath

	for j, point := range path.Points {
		z := tc.noise.Sample(point.X*turbulence.Frequency-elapsed*turbulence.Speed, point.Y*turbulence.Frequency) * turbulence.Amplitude
		path.Points[j].Z = restPath.Points[j].Z + z
	}

}

// DebugPaths returns the live paths of a sample of the instances (every 15th), for drawing overlays.
func (tc *TransitionController) DebugPaths() []*Path {
	paths := []*Path{}
	for i := 0; i < len(tc.instances); i += debugPathStride {
		paths = append(paths, tc.instances[i].Path)
	}
	return paths
}
