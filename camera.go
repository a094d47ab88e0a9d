package slides3d

import (
	"math"
)

// Camera represents a perspective camera (where you look from). It only does the math; drawing happens in the render package.
type Camera struct {
	position Vector
	rotation Matrix4

	near, far   float64 // The near and far clipping plane. Near defaults to 0.01, Far to 100.
	fieldOfView float64 // Vertical field of view in degrees. Defaults to 45.

	width, height int

	updateProjectionMatrix bool
	cachedProjectionMatrix Matrix4

	callbacks *CameraCallbacks
}

// NewCamera creates a new Camera with the specified viewport width and height, looking down -Z from the origin.
func NewCamera(w, h int) *Camera {

	cam := &Camera{
		rotation:    NewMatrix4(),
		near:        0.01,
		far:         100,
		fieldOfView: 45,

		width:  max(w, 1),
		height: max(h, 1),

		updateProjectionMatrix: true,
		callbacks:              &CameraCallbacks{},
	}

	return cam

}

// Callbacks returns the Camera's callbacks, which can be set to be notified of changes.
func (camera *Camera) Callbacks() *CameraCallbacks {
	return camera.callbacks
}

// Resize resizes the Camera's viewport to the specified width and height. If the width and height are already set to the
// specified arguments, then the function does nothing. Otherwise the projection is recalculated and OnResize is called.
func (camera *Camera) Resize(w, h int) {

	w = max(w, 1)
	h = max(h, 1)

	if w == camera.width && h == camera.height {
		return
	}

	camera.width = w
	camera.height = h
	camera.updateProjectionMatrix = true

	if camera.callbacks.OnResize != nil {
		camera.callbacks.OnResize(camera)
	}

}

// Size returns the width and height of the camera's viewport.
func (camera *Camera) Size() (w, h int) {
	return camera.width, camera.height
}

// AspectRatio returns the camera's aspect ratio (width / height).
func (camera *Camera) AspectRatio() float64 {
	return float64(camera.width) / float64(camera.height)
}

// SetLocalPosition moves the Camera to the position given.
func (camera *Camera) SetLocalPosition(x, y, z float64) {
	camera.position = NewVector(x, y, z)
}

// WorldPosition returns the Camera's position.
func (camera *Camera) WorldPosition() Vector {
	return camera.position
}

// SetLocalRotation sets the Camera's rotation matrix. The Camera looks down its local -Z axis.
func (camera *Camera) SetLocalRotation(rotation Matrix4) {
	camera.rotation = rotation
}

// WorldRotation returns the Camera's rotation matrix.
func (camera *Camera) WorldRotation() Matrix4 {
	return camera.rotation
}

// WorldMatrix returns the Camera's transform (rotation, then translation).
func (camera *Camera) WorldMatrix() Matrix4 {
	return camera.rotation.Mult(NewMatrix4Translate(camera.position.X, camera.position.Y, camera.position.Z))
}

// ViewMatrix returns the Camera's view matrix, which is the inverse of its world matrix.
func (camera *Camera) ViewMatrix() Matrix4 {

	camPos := camera.position.Invert()
	transform := NewMatrix4Translate(camPos.X, camPos.Y, camPos.Z)

	// The rotation is orthonormal, so transposing it inverts it
	transform = transform.Mult(camera.rotation.Transposed())

	return transform

}

// Projection returns the Camera's projection matrix.
func (camera *Camera) Projection() Matrix4 {

	if !camera.updateProjectionMatrix {
		return camera.cachedProjectionMatrix
	}

	camera.updateProjectionMatrix = false

	camera.cachedProjectionMatrix = NewProjectionPerspective(camera.fieldOfView, camera.near, camera.far, float64(camera.width), float64(camera.height))

	return camera.cachedProjectionMatrix

}

// SetFieldOfView sets the vertical field of view of the camera in degrees.
func (camera *Camera) SetFieldOfView(fovY float64) {
	camera.fieldOfView = fovY
	camera.updateProjectionMatrix = true
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float64 {
	return camera.fieldOfView
}

// Near returns the near plane of the camera.
func (camera *Camera) Near() float64 {
	return camera.near
}

// SetNear sets the near plane of the camera.
func (camera *Camera) SetNear(near float64) {
	camera.near = near
	camera.updateProjectionMatrix = true
}

// Far returns the far plane of the camera.
func (camera *Camera) Far() float64 {
	return camera.far
}

// SetFar sets the far plane of the camera.
func (camera *Camera) SetFar(far float64) {
	camera.far = far
	camera.updateProjectionMatrix = true
}

// VisibleHeightAtDepth returns the height in world units that the camera sees at the given world Z depth,
// for a camera looking down -Z.
func (camera *Camera) VisibleHeightAtDepth(depth float64) float64 {

	// compensate for cameras not positioned at z=0
	offset := camera.position.Z
	if depth < offset {
		depth -= offset
	} else {
		depth += offset
	}

	vFOV := ToRadians(camera.fieldOfView)

	return 2 * math.Tan(vFOV/2) * math.Abs(depth)

}

// VisibleWidthAtDepth returns the width in world units that the camera sees at the given world Z depth.
func (camera *Camera) VisibleWidthAtDepth(depth float64) float64 {
	return camera.VisibleHeightAtDepth(depth) * camera.AspectRatio()
}

// WorldToClip transforms a 3D position in the world to clip space, with W holding the perspective divisor.
func (camera *Camera) WorldToClip(vert Vector) Vector {
	return camera.ViewMatrix().Mult(camera.Projection()).MultVecW(vert)
}

// ClipToScreen remaps a clip-space vertex to screen pixels. X and Y are in pixels (Y pointing down), and Z holds the
// distance along the view axis, for depth sorting.
func (camera *Camera) ClipToScreen(vert Vector) Vector {

	w := vert.W
	if math.Abs(w) < 1e-6 {
		w = 1e-6
	}

	width, height := float64(camera.width), float64(camera.height)

	return Vector{
		X: (vert.X/w*0.5 + 0.5) * width,
		Y: (1 - (vert.Y/w*0.5 + 0.5)) * height,
		Z: vert.W,
		W: 1,
	}

}

// WorldToScreenPixels transforms a 3D position in the world to a position onscreen, with X and Y representing the pixels.
func (camera *Camera) WorldToScreenPixels(vert Vector) Vector {
	return camera.ClipToScreen(camera.WorldToClip(vert))
}

// ScreenToPlane converts a pixel position on screen into the point where the camera ray through it hits the plane z = targetZ.
// If the ray runs parallel to the plane, the camera's position projected onto the plane is returned.
func (camera *Camera) ScreenToPlane(x, y, targetZ float64) Vector {

	width, height := float64(camera.width), float64(camera.height)

	ndc := NewVector((x/width)*2-1, -(y/height)*2+1, 0.5)

	unproject := camera.ViewMatrix().Mult(camera.Projection()).Inverted()

	p := unproject.MultVecW(ndc)
	if p.W != 0 {
		p = p.Divide(p.W)
	}

	dir := p.Sub(camera.position).Unit()

	if math.Abs(dir.Z) < 1e-9 {
		return camera.position.SetZ(targetZ)
	}

	distance := (targetZ - camera.position.Z) / dir.Z

	return camera.position.Add(dir.Scale(distance))

}
