package slides3d

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() *Camera {
	camera := NewCamera(1280, 720)
	camera.SetLocalPosition(0, 0, 5)
	return camera
}

func TestBindingFreezeOutOfRange(t *testing.T) {

	binding := NewProjectionBinding(3, 4, 3, NewColor(1, 1, 1, 1))

	for _, i := range []int{-1, 3, 10} {
		err := binding.Freeze(i, NewMatrix4())
		var rangeErr *IndexOutOfRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, i, rangeErr.Index)
		assert.Equal(t, 3, rangeErr.Length)

		_, err = binding.Frozen(i)
		assert.Error(t, err)
	}

	require.NoError(t, binding.Freeze(2, NewMatrix4Translate(1, 2, 3)))

}

func TestBindingUnfrozenIsIdentity(t *testing.T) {

	binding := NewProjectionBinding(2, 4, 3, NewColor(1, 1, 1, 1))

	frozen, err := binding.Frozen(1)
	require.NoError(t, err)
	assert.True(t, frozen.IsIdentity())

}

func TestBindingRowsAreCopies(t *testing.T) {

	binding := NewProjectionBinding(2, 4, 3, NewColor(1, 1, 1, 1))
	require.NoError(t, binding.Freeze(0, NewMatrix4Translate(1, 2, 3)))

	rows, err := binding.Rows(0)
	require.NoError(t, err)
	assert.Equal(t, NewVector4(1, 2, 3, 1), rows[3])

	rows[3] = NewVector4(9, 9, 9, 1)

	frozen, err := binding.Frozen(0)
	require.NoError(t, err)
	assert.Equal(t, NewVector(1, 2, 3), frozen.Position())

}

func TestBindingResizeBeforeBind(t *testing.T) {

	binding := NewProjectionBinding(1, 4, 3, NewColor(1, 1, 1, 1))
	binding.Resize(newTestCamera())

	assert.False(t, binding.Bound())

	w, h := binding.ScaledSize()
	assert.Zero(t, w)
	assert.Zero(t, h)

	_, _, ok := binding.Project(Vector{}, VecZ, 0)
	assert.False(t, ok)

}

func TestBindingScaledSize(t *testing.T) {

	camera := newTestCamera()

	binding := NewProjectionBinding(1, 4, 3, NewColor(1, 1, 1, 1))
	binding.Bind(camera)

	// Narrower than the viewport: fit the height
	w, h := binding.ScaledSize()
	assert.InDelta(t, 0.7, h, 1e-9)
	assert.InDelta(t, 0.7*(4.0/3)/(1280.0/720), w, 1e-9)

	// Resizing to a square viewport makes the image wider than it: fit the width
	camera.Resize(720, 720)
	binding.Resize(camera)

	w, h = binding.ScaledSize()
	assert.InDelta(t, 0.7, w, 1e-9)
	assert.InDelta(t, 0.7*0.75, h, 1e-9)

}

func TestBindingProject(t *testing.T) {

	camera := newTestCamera()

	binding := NewProjectionBinding(2, 4, 3, NewColor(1, 1, 1, 1))
	binding.Bind(camera)

	u, v, ok := binding.Project(Vector{}, VecZ, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.5, u, 1e-9)
	assert.InDelta(t, 0.5, v, 1e-9)

	// Turned away from the camera
	_, _, ok = binding.Project(Vector{}, VecZ.Invert(), 0)
	assert.False(t, ok)

	// Outside of the image
	_, _, ok = binding.Project(NewVector(2, 0, 0), VecZ, 0)
	assert.False(t, ok)

	// Up and to the right lands up and to the right in the image
	u, v, ok = binding.Project(NewVector(0.2, 0.1, 0), VecZ, 0)
	require.True(t, ok)
	assert.Greater(t, u, 0.5)
	assert.Greater(t, v, 0.5)

	// The frozen transform is applied before projecting
	require.NoError(t, binding.Freeze(1, NewMatrix4Translate(100, 0, 0)))
	_, _, ok = binding.Project(Vector{}, VecZ, 1)
	assert.False(t, ok)

	_, _, ok = binding.Project(Vector{}, VecZ, 5)
	assert.False(t, ok)

}

func TestBindingIgnoresLaterCameraMoves(t *testing.T) {

	camera := newTestCamera()

	binding := NewProjectionBinding(1, 4, 3, NewColor(1, 1, 1, 1))
	binding.Bind(camera)

	u1, v1, ok1 := binding.Project(NewVector(0.2, 0.1, 0), VecZ, 0)

	camera.SetLocalPosition(3, -1, 8)

	u2, v2, ok2 := binding.Project(NewVector(0.2, 0.1, 0), VecZ, 0)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, u1, u2)
	assert.Equal(t, v1, v2)

}
