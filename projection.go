package slides3d

// TextureScale is the share of the viewport the projected image covers along its fitting side.
const TextureScale = 0.7

// CameraSnapshot is a copy of a camera's matrices at a point in time.
type CameraSnapshot struct {
	View       Matrix4
	Projection Matrix4
	World      Matrix4
	Position   Vector
	Aspect     float64
}

// ProjectionBinding projects an image from a camera onto a set of instances, as they were posed at the moment each one was frozen.
// The camera is copied when bound, so later camera moves don't drag the image along; only the projection and aspect ratio
// follow viewport resizes.
//
// The frozen transforms live in a fixed arena of four rows per instance, allocated up front.
type ProjectionBinding struct {
	FallbackColor Color   // Color used where the image doesn't reach or for faces turned away from the camera.
	TextureScale  float64 // Defaults to TextureScale.

	imageWidth, imageHeight int

	snapshot       CameraSnapshot
	viewProjection Matrix4
	bound          bool

	widthScaled, heightScaled float64

	rows []Vector
}

// NewProjectionBinding allocates a ProjectionBinding for the number of instances given, projecting an image of the given size.
func NewProjectionBinding(instances, imageWidth, imageHeight int, fallback Color) *ProjectionBinding {

	pb := &ProjectionBinding{
		FallbackColor: fallback,
		TextureScale:  TextureScale,
		imageWidth:    max(imageWidth, 1),
		imageHeight:   max(imageHeight, 1),
		rows:          make([]Vector, max(instances, 0)*4),
	}

	// Unfrozen instances sit at the identity
	for i := 0; i < pb.Len(); i++ {
		pb.setRows(i, NewMatrix4())
	}

	return pb

}

// Len returns the number of instances in the arena.
func (pb *ProjectionBinding) Len() int {
	return len(pb.rows) / 4
}

// Bind copies the camera's view, projection and world matrices and its position. It's meant to be called once, right after the camera
// has been placed.
func (pb *ProjectionBinding) Bind(camera *Camera) {
	pb.snapshot = CameraSnapshot{
		View:       camera.ViewMatrix(),
		Projection: camera.Projection(),
		World:      camera.WorldMatrix(),
		Position:   camera.WorldPosition(),
		Aspect:     camera.AspectRatio(),
	}
	pb.bound = true
	pb.refresh()
}

// Bound returns if Bind has been called.
func (pb *ProjectionBinding) Bound() bool {
	return pb.bound
}

// Snapshot returns the bound camera matrices.
func (pb *ProjectionBinding) Snapshot() CameraSnapshot {
	return pb.snapshot
}

// Resize refreshes the bound projection matrix and aspect ratio from the camera, leaving the view, world matrices and position as they
// were bound. It does nothing if the binding hasn't been bound yet.
func (pb *ProjectionBinding) Resize(camera *Camera) {
	if !pb.bound {
		return
	}
	pb.snapshot.Projection = camera.Projection()
	pb.snapshot.Aspect = camera.AspectRatio()
	pb.refresh()
}

func (pb *ProjectionBinding) refresh() {

	pb.viewProjection = pb.snapshot.View.Mult(pb.snapshot.Projection)

	scale := pb.TextureScale
	if scale <= 0 {
		scale = TextureScale
	}

	// Fit the image inside of the viewport, keeping its aspect ratio; sizes are in viewport units.
	ratio := float64(pb.imageWidth) / float64(pb.imageHeight)
	if ratio > pb.snapshot.Aspect {
		pb.widthScaled = scale
		pb.heightScaled = scale * pb.snapshot.Aspect / ratio
	} else {
		pb.heightScaled = scale
		pb.widthScaled = scale * ratio / pb.snapshot.Aspect
	}

}

// ScaledSize returns the share of the viewport's width and height covered by the projected image.
func (pb *ProjectionBinding) ScaledSize() (float64, float64) {
	return pb.widthScaled, pb.heightScaled
}

func (pb *ProjectionBinding) setRows(i int, transform Matrix4) {
	for r := 0; r < 4; r++ {
		pb.rows[i*4+r] = transform.Row(r)
	}
}

// Freeze stores the transform the instance at index i is projected relative to.
func (pb *ProjectionBinding) Freeze(i int, transform Matrix4) error {
	if i < 0 || i >= pb.Len() {
		return &IndexOutOfRangeError{Index: i, Length: pb.Len()}
	}
	pb.setRows(i, transform)
	return nil
}

// Rows returns the four frozen matrix rows of the instance at index i, as handed to the renderer.
func (pb *ProjectionBinding) Rows(i int) ([4]Vector, error) {
	if i < 0 || i >= pb.Len() {
		return [4]Vector{}, &IndexOutOfRangeError{Index: i, Length: pb.Len()}
	}
	return [4]Vector(pb.rows[i*4 : i*4+4]), nil
}

// Frozen returns the frozen transform of the instance at index i.
func (pb *ProjectionBinding) Frozen(i int) (Matrix4, error) {
	rows, err := pb.Rows(i)
	if err != nil {
		return Matrix4{}, err
	}
	mat := Matrix4{}
	for r, row := range rows {
		mat.SetRow(r, row)
	}
	return mat, nil
}

// Project returns the texture coordinates of a point of the instance at index i, given in the instance's local space along with
// its local normal. u runs left to right and v bottom to top. ok is false when the fallback color should be used instead: the point
// lands outside of the image, faces away from the projecting camera, or the binding isn't bound.
func (pb *ProjectionBinding) Project(local, normal Vector, i int) (u, v float64, ok bool) {

	if !pb.bound {
		return 0, 0, false
	}

	frozen, err := pb.Frozen(i)
	if err != nil {
		return 0, 0, false
	}

	world := frozen.MultVec(local)

	clip := pb.viewProjection.MultVecW(world)
	if clip.W <= 0 {
		return 0, 0, false
	}

	u = (clip.X/clip.W)*0.5 + 0.5
	v = (clip.Y/clip.W)*0.5 + 0.5

	u = mapRange(u, 0.5-pb.widthScaled/2, 0.5+pb.widthScaled/2, 0, 1)
	v = mapRange(v, 0.5-pb.heightScaled/2, 0.5+pb.heightScaled/2, 0, 1)

	if u < 0 || u > 1 || v < 0 || v > 1 {
		return u, v, false
	}

	projectorDirection := pb.snapshot.Position.Sub(world).Unit()
	if frozen.MultDirection(normal).Dot(projectorDirection) < 0 {
		return u, v, false
	}

	return u, v, true

}
