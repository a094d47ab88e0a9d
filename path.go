package slides3d

import "math"

// Path is a smooth open curve running through a fixed set of control points. It's evaluated as a centripetal Catmull-Rom spline
// with a uniform parameter, so t = i / (len(Points)-1) lands exactly on control point i. Points are exposed for in-place displacement;
// the count must not change once instances rely on it.
type Path struct {
	Points []Vector
}

// NewPath returns a new Path running through the points provided.
func NewPath(points ...Vector) *Path {
	return &Path{Points: append(make([]Vector, 0, len(points)), points...)}
}

// Clone creates a deep copy of the Path and its points.
func (path *Path) Clone() *Path {
	return NewPath(path.Points...)
}

// HopCount returns the number of hops in the path (i.e. number of points - 1).
func (path *Path) HopCount() int {
	return len(path.Points) - 1
}

// Length returns the total distance covered by stepping straight from control point to control point.
func (path *Path) Length() float64 {
	dist := 0.0
	for i := 1; i < len(path.Points); i++ {
		dist += path.Points[i].Distance(path.Points[i-1])
	}
	return dist
}

// Point returns the position on the Path at t, clamped to the 0 to 1 range.
// If the Path has no points, this function returns an empty Vector.
func (path *Path) Point(t float64) Vector {

	l := len(path.Points)

	if l == 0 {
		return Vector{}
	}

	if l == 1 {
		return path.Points[0]
	}

	t = clamp01(t)

	p := float64(l-1) * t
	index := int(math.Floor(p))
	weight := p - float64(index)

	if index >= l-1 {
		index = l - 2
		weight = 1
	}

	var p0, p3 Vector

	p1 := path.Points[index]
	p2 := path.Points[index+1]

	// Open ends are extrapolated by mirroring the neighboring point.
	if index > 0 {
		p0 = path.Points[index-1]
	} else {
		p0 = p1.Add(p1.Sub(p2))
	}

	if index+2 < l {
		p3 = path.Points[index+2]
	} else {
		p3 = p2.Add(p2.Sub(p1))
	}

	dt0 := math.Pow(p0.DistanceSquared(p1), 0.25)
	dt1 := math.Pow(p1.DistanceSquared(p2), 0.25)
	dt2 := math.Pow(p2.DistanceSquared(p3), 0.25)

	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return Vector{
		X: catmullRom(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, weight),
		Y: catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, weight),
		Z: catmullRom(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, weight),
	}

}

// catmullRom evaluates the non-uniform Catmull-Rom segment between x1 and x2 as a cubic Hermite polynomial.
func catmullRom(x0, x1, x2, x3, dt0, dt1, dt2, t float64) float64 {

	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2

	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2

	return c0 + c1*t + c2*t*t + c3*t*t*t

}

const tangentDelta = 0.0001

// Tangent returns the normalized direction of travel along the Path at t, estimated from two nearby points.
func (path *Path) Tangent(t float64) Vector {
	t1 := clamp01(t - tangentDelta)
	t2 := clamp01(t + tangentDelta)
	return path.Point(t2).Sub(path.Point(t1)).Unit()
}

// AlignOnPath returns a transform that places an object at t along the Path, with its +Y axis turned to follow the Path's tangent.
func AlignOnPath(path *Path, t float64) Matrix4 {

	point := path.Point(t)
	tangent := path.Tangent(t)

	axis := VecY.Cross(tangent).Unit()
	angle := math.Acos(clamp(VecY.Dot(tangent), -1, 1))

	// Heading straight down leaves no unique axis, so any horizontal one will do.
	if axis.IsZero() && angle > math.Pi/2 {
		axis = VecX
	}

	rotation := NewQuaternionFromAxisAngle(axis, angle).ToMatrix4()

	return rotation.Mult(NewMatrix4Translate(point.X, point.Y, point.Z))

}
