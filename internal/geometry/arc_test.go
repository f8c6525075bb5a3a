package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcPath_SamePointIsFlat(t *testing.T) {
	a := orb.Point{-3.70, 40.42}

	arc := ArcPath(a, a, DefaultArcPoints)
	require.Len(t, arc, DefaultArcPoints+1)
	for _, p := range arc {
		assert.Equal(t, a, p)
	}
}

func TestArcPath_Shape(t *testing.T) {
	start := orb.Point{0, 0}
	end := orb.Point{10, 0}

	arc := ArcPath(start, end, 50)
	require.Len(t, arc, 51)

	assert.Equal(t, start, arc[0])
	assert.Equal(t, end, arc[50])

	// peak halfway: 10% of the 10 degree chord
	assert.InDelta(t, 5.0, arc[25][0], 1e-9)
	assert.InDelta(t, 1.0, arc[25][1], 1e-9)

	// longitudes advance linearly
	for i := 1; i < len(arc); i++ {
		assert.InDelta(t, 0.2, arc[i][0]-arc[i-1][0], 1e-9)
	}
}

func TestArcPath_DefaultPointCount(t *testing.T) {
	assert.Len(t, ArcPath(orb.Point{0, 0}, orb.Point{1, 1}, 0), DefaultArcPoints+1)
	assert.Len(t, ArcPath(orb.Point{0, 0}, orb.Point{1, 1}, -3), DefaultArcPoints+1)
}
