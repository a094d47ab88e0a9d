package slides3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRests = []Vector{
	NewVector(0, 0, 0),
	NewVector(1.25, -0.5, 0),
	NewVector(-2.1, 0.9, 0),
	NewVector(0.01, 1.4, 0),
}

func TestNoisePathBuilderRestsInTheMiddle(t *testing.T) {

	builder := NewNoisePathBuilder(NewNoiseField(7), -6)

	for _, rest := range testRests {

		path := builder.Build(rest)

		require.Len(t, path.Points, PathSegments)
		assertVectorInDelta(t, rest, path.Point(0.5), 1e-9)

		// The sweep runs from MinX to -MinX, pushed back to StartZ at both ends
		assert.InDelta(t, rest.X-6, path.Points[0].X, 1e-9)
		assert.InDelta(t, rest.X+6, path.Points[PathSegments-1].X, 1e-9)
		assert.InDelta(t, -1, path.Points[0].Z, 1e-9)
		assert.InDelta(t, -1, path.Points[PathSegments-1].Z, 1e-9)

	}

}

func TestSpiralPathBuilderRestsInTheMiddle(t *testing.T) {

	builder := NewSpiralPathBuilder(5, func() float64 { return 0.8 })

	for _, rest := range testRests {

		path := builder.Build(rest)

		require.Len(t, path.Points, PathSegments)
		assertVectorInDelta(t, rest, path.Point(0.5), 1e-9)

		first := path.Points[0]
		last := path.Points[PathSegments-1]

		assert.InDelta(t, -10, first.Z, 1e-9)
		assert.InDelta(t, 10, last.Z, 1e-9)

		// The ends sit on the tube
		assert.InDelta(t, 0.8, math.Hypot(first.X, first.Y), 1e-6)
		assert.InDelta(t, 0.8, math.Hypot(last.X, last.Y), 1e-6)

	}

}

func TestSpiralPathBuilderReadsRadiusOnBuild(t *testing.T) {

	radius := 0.8
	builder := NewSpiralPathBuilder(5, func() float64 { return radius })

	before := builder.Build(NewVector(1, 1, 0))
	radius = 2
	after := builder.Build(NewVector(1, 1, 0))

	assert.InDelta(t, 0.8, math.Hypot(before.Points[0].X, before.Points[0].Y), 1e-6)
	assert.InDelta(t, 2, math.Hypot(after.Points[0].X, after.Points[0].Y), 1e-6)

}

func TestOddSegments(t *testing.T) {
	assert.Equal(t, PathSegments, oddSegments(0))
	assert.Equal(t, 21, oddSegments(20))
	assert.Equal(t, 21, oddSegments(21))
}
