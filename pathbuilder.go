package slides3d

import "math"

// PathSegments is the default number of control points in an instance's path. It's odd so the path has a middle point,
// which is where the instance rests.
const PathSegments = 51

// PathBuilder generates the path an instance travels along. The middle control point of the returned Path is the rest position;
// t = 0 is the start of the entering animation and t = 1 is the end of the exiting one.
type PathBuilder interface {
	Build(rest Vector) *Path
}

func oddSegments(segments int) int {
	if segments < 3 {
		return PathSegments
	}
	if segments%2 == 0 {
		return segments + 1
	}
	return segments
}

// NoisePathBuilder builds paths sweeping horizontally across the view from MinX to -MinX. Away from the middle, the points are
// pushed back to StartZ, squashed vertically and offset by a band of noise, so instances arrive as a loose wavy ribbon.
type NoisePathBuilder struct {
	Noise     *NoiseField
	MinX      float64 // Horizontal start of the sweep; should be negative and beyond the left edge of the view.
	StartZ    float64 // Depth the paths start and end at. Defaults to -1.
	Segments  int     // Number of control points. Defaults to PathSegments.
	Frequency float64 // Noise frequency along X. Defaults to 0.25.
	Amplitude float64 // Vertical noise amplitude. Defaults to 0.6.
}

// NewNoisePathBuilder returns a new NoisePathBuilder with the default settings, sweeping from minX to -minX.
func NewNoisePathBuilder(noise *NoiseField, minX float64) *NoisePathBuilder {
	return &NoisePathBuilder{
		Noise:     noise,
		MinX:      minX,
		StartZ:    -1,
		Segments:  PathSegments,
		Frequency: 0.25,
		Amplitude: 0.6,
	}
}

func (nb *NoisePathBuilder) Build(rest Vector) *Path {

	segments := oddSegments(nb.Segments)
	last := float64(segments - 1)
	half := last / 2

	points := make([]Vector, segments)

	for i := range points {

		fi := float64(i)

		offsetX := mapRange(fi, 0, last, nb.MinX, -nb.MinX)

		noiseAmount := mapRangeTriple(fi, 0, half, last, 1, 0, 1)
		noiseY := nb.Noise.Sample(offsetX*nb.Frequency) * nb.Amplitude * easeOutQuart(noiseAmount)
		scaleY := mapRange(easeInQuart(1-noiseAmount), 0, 1, 0.2, 1)

		offsetZ := mapRangeTriple(fi, 0, half, last, nb.StartZ, 0, nb.StartZ)

		points[i] = NewVector(rest.X+offsetX, rest.Y*scaleY+noiseY, rest.Z+offsetZ)

	}

	return NewPath(points...)

}

// SpiralPathBuilder builds helical paths: instances fly in from behind through a tube of the given radius around the view axis,
// unwind into their resting position on the image plane, and then wind back into the tube towards the camera.
type SpiralPathBuilder struct {
	CameraZ   float64        // Initial camera distance; the paths run from -2*CameraZ to 2*CameraZ.
	Radius    func() float64 // Radius of the tube, read on every Build so it can be tuned live.
	Frequency float64        // Angle step in radians between two control points. Defaults to 0.2.
	Segments  int            // Number of control points. Defaults to PathSegments.
}

// NewSpiralPathBuilder returns a new SpiralPathBuilder with the default settings.
func NewSpiralPathBuilder(cameraZ float64, radius func() float64) *SpiralPathBuilder {
	return &SpiralPathBuilder{
		CameraZ:   cameraZ,
		Radius:    radius,
		Frequency: 0.2,
		Segments:  PathSegments,
	}
}

func (sb *SpiralPathBuilder) Build(rest Vector) *Path {

	segments := oddSegments(sb.Segments)
	last := float64(segments - 1)
	half := last / 2

	endZ := sb.CameraZ * 2
	startZ := -endZ

	tubeRadius := 0.0
	if sb.Radius != nil {
		tubeRadius = sb.Radius()
	}

	radius := math.Hypot(rest.X, rest.Y)
	angle := math.Atan2(rest.Y, rest.X)

	points := make([]Vector, segments)

	for i := range points {

		fi := float64(i)

		if i == segments/2 {
			points[i] = rest
			continue
		}

		z := mapRange(fi, 0, last, startZ, endZ)

		// 0 is the tube, 1 is the resting position
		scale := easeInExpo(1 - mapRangeTriple(fi, 0, half, last, 1, 0, 1))

		r := radius*scale + tubeRadius*(1-scale)
		a := (half-fi)*sb.Frequency + angle

		points[i] = NewVector(r*math.Cos(a), r*math.Sin(a), z)

	}

	return NewPath(points...)

}
