package slides3d

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMinimumSpacing(t *testing.T, points []Vector, minDistance float64) {
	t.Helper()
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if d := points[i].Distance(points[j]); d < minDistance {
				t.Fatalf("points %d and %d are %f apart, closer than %f", i, j, d, minDistance)
			}
		}
	}
}

func TestSampleSpacing(t *testing.T) {

	sampler := NewPointSampler(1, RuntimeConfig{})

	points, err := sampler.Sample(40, 24, 7.73, 9.66)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	assertMinimumSpacing(t, points, 7.73)

	for _, p := range points {
		assert.True(t, p.X >= 0 && p.X <= 40 && p.Y >= 0 && p.Y <= 24, "point %v outside of the domain", p)
	}

}

func TestSampleRandomDomains(t *testing.T) {

	sampler := NewPointSampler(99, RuntimeConfig{})

	domains := [][4]float64{
		{1, 1, 0.2, 0.3},
		{10, 2, 0.5, 0.5},
		{3.2, 7.9, 0.11, 0.4},
	}

	for _, d := range domains {
		points, err := sampler.Sample(d[0], d[1], d[2], d[3])
		require.NoError(t, err)
		require.NotEmpty(t, points, "domain %v", d)
		assertMinimumSpacing(t, points, d[2])
	}

}

func TestSampleIsDeterministic(t *testing.T) {

	a, err := NewPointSampler(5, RuntimeConfig{}).SampleRelative(8, 4.5)
	require.NoError(t, err)

	b, err := NewPointSampler(5, RuntimeConfig{}).SampleRelative(8, 4.5)
	require.NoError(t, err)

	assert.Equal(t, a, b)

}

func TestSampleInvalidDomains(t *testing.T) {

	sampler := NewPointSampler(1, RuntimeConfig{})

	domains := map[string][4]float64{
		"zero width":        {0, 10, 1, 2},
		"negative height":   {10, -1, 1, 2},
		"zero distance":     {10, 10, 0, 2},
		"inverted distance": {10, 10, 2, 1},
		"nan":               {math.NaN(), 10, 1, 2},
		"infinite":          {10, math.Inf(1), 1, 2},
		"too dense":         {1e6, 1e6, 1e-3, 2e-3},
		"wider than domain": {10, 10, 20, 25},
		"as wide as height": {40, 5, 5, 6},
	}

	for name, d := range domains {
		t.Run(name, func(t *testing.T) {
			points, err := sampler.Sample(d[0], d[1], d[2], d[3])
			assert.Nil(t, points)

			var samplingErr *SamplingError
			require.True(t, errors.As(err, &samplingErr), "expected a SamplingError, got %v", err)
			assert.NotEmpty(t, samplingErr.Reason)
		})
	}

}

func TestFilterWaveEdges(t *testing.T) {

	points := []Vector{
		NewVector2d(0, 1),
		NewVector2d(5, 1),
		NewVector2d(10, 1),
	}

	filtered := FilterWaveEdges(points, 10)

	assert.Equal(t, []Vector{NewVector2d(5, 1)}, filtered)

}

func TestCenterPoints(t *testing.T) {

	centered := CenterPoints([]Vector{NewVector2d(0, 0), NewVector2d(4, 2)}, 4, 2)

	assert.Equal(t, []Vector{NewVector2d(-2, -1), NewVector2d(2, 1)}, centered)

}
