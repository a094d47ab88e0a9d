package slides3d

// CameraCallbacks represents a set of callbacks to be called when a Camera changes.
type CameraCallbacks struct {
	OnResize func(camera *Camera) // A callback to be called whenever the Camera's viewport size changes.
}
