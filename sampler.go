package slides3d

import (
	"math"
	"math/rand"
	"time"
)

const maxSamplerGridCells = 1 << 24

// PointSampler scatters points over a rectangle with Poisson-disc sampling: no two points are closer than the minimum
// distance, and each new point is spawned between one and two "radii" away from an existing one, where the radius is picked
// between the minimum and maximum distance.
type PointSampler struct {
	Tries   int // Tries is the number of candidates generated around an active point before it's retired. Defaults to 30.
	Runtime RuntimeConfig
	rng     *rand.Rand
}

// NewPointSampler returns a new PointSampler drawing from a random source seeded with the seed given.
func NewPointSampler(seed int64, runtime RuntimeConfig) *PointSampler {
	return &PointSampler{
		Tries:   30,
		Runtime: runtime,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Sample returns points inside [0, width] x [0, height], pairwise at least minDistance apart.
// A valid domain always yields at least one point.
func (ps *PointSampler) Sample(width, height, minDistance, maxDistance float64) ([]Vector, error) {

	domainErr := func(reason string) error {
		return &SamplingError{Width: width, Height: height, MinDistance: minDistance, MaxDistance: maxDistance, Reason: reason}
	}

	for _, v := range []float64{width, height, minDistance, maxDistance} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, domainErr("non-finite value")
		}
	}

	if width <= 0 || height <= 0 {
		return nil, domainErr("width and height must be positive")
	}

	if minDistance <= 0 {
		return nil, domainErr("minimum distance must be positive")
	}

	if maxDistance < minDistance {
		return nil, domainErr("maximum distance is smaller than the minimum distance")
	}

	if minDistance >= math.Min(width, height) {
		return nil, domainErr("minimum distance does not fit in the domain")
	}

	var start time.Time
	if ps.Runtime.Debug {
		start = time.Now()
	}

	cellSize := minDistance / math.Sqrt2
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))

	if float64(cols)*float64(rows) > maxSamplerGridCells {
		return nil, domainErr("minimum distance is too small for the domain")
	}

	// Each cell holds the index of its point + 1, or 0 when empty; a cell's diagonal equals minDistance, so it fits one point at most.
	grid := make([]int, cols*rows)

	cellOf := func(p Vector) (int, int) {
		return clamp(int(p.X/cellSize), 0, cols-1), clamp(int(p.Y/cellSize), 0, rows-1)
	}

	points := []Vector{}
	active := []int{}

	add := func(p Vector) {
		points = append(points, p)
		cx, cy := cellOf(p)
		grid[cy*cols+cx] = len(points)
		active = append(active, len(points)-1)
	}

	fits := func(p Vector) bool {
		if p.X < 0 || p.X > width || p.Y < 0 || p.Y > height {
			return false
		}
		cx, cy := cellOf(p)
		minSq := minDistance * minDistance
		for y := max(cy-2, 0); y <= min(cy+2, rows-1); y++ {
			for x := max(cx-2, 0); x <= min(cx+2, cols-1); x++ {
				if n := grid[y*cols+x]; n > 0 && points[n-1].DistanceSquared(p) < minSq {
					return false
				}
			}
		}
		return true
	}

	tries := ps.Tries
	if tries <= 0 {
		tries = 30
	}

	add(NewVector2d(ps.rng.Float64()*width, ps.rng.Float64()*height))

	for len(active) > 0 {

		a := ps.rng.Intn(len(active))
		origin := points[active[a]]
		radius := minDistance + ps.rng.Float64()*(maxDistance-minDistance)

		found := false

		for k := 0; k < tries; k++ {
			angle := ps.rng.Float64() * 2 * math.Pi
			dist := radius + ps.rng.Float64()*radius
			candidate := NewVector2d(origin.X+math.Cos(angle)*dist, origin.Y+math.Sin(angle)*dist)
			if fits(candidate) {
				add(candidate)
				found = true
				break
			}
		}

		if !found {
			active[a] = active[len(active)-1]
			active = active[:len(active)-1]
		}

	}

	if ps.Runtime.Debug {
		ps.Runtime.logger().Debug("poisson-disc sampling", "points", len(points), "elapsed", time.Since(start), "width", width, "height", height)
	}

	return points, nil

}

// SampleRelative samples the domain with distances proportional to its smaller side (4% to 5%), which gives a similar
// density of instances regardless of the viewport size.
func (ps *PointSampler) SampleRelative(width, height float64) ([]Vector, error) {
	side := math.Min(width, height)
	return ps.Sample(width, height, side*0.04, side*0.05)
}

func waveEdge(y float64) float64 {
	return math.Sin(y*3) * math.Sin(y*2) * math.Sin(y*4.7) * 0.5
}

// FilterWaveEdges drops the points lying outside of two wavy vertical borders near the left and right edges of a domain of the given width,
// giving the sampled rectangle ragged sides.
func FilterWaveEdges(points []Vector, width float64) []Vector {
	filtered := make([]Vector, 0, len(points))
	for _, p := range points {
		if p.X < (waveEdge(p.Y)+0.5)*0.7 {
			continue
		}
		if p.X > (waveEdge(p.Y)-0.5)*0.7+width {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// CenterPoints shifts points sampled in [0, width] x [0, height] so the domain is centered on the origin.
func CenterPoints(points []Vector, width, height float64) []Vector {
	centered := make([]Vector, len(points))
	for i, p := range points {
		centered[i] = NewVector2d(p.X-width/2, p.Y-height/2)
	}
	return centered
}
