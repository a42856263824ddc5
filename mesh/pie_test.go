package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieSinglePartition(t *testing.T) {
	var (
		lenx = math.Pi / 2 // quarter circle
		leny = 1.
	)
	gm, err := NewGenerateMesh(Pie, 4, 3, lenx, leny, 1, 0)
	require.NoError(t, err)
	g := gm.Generate()
	assertCRSWellFormed(t, g)

	// the bottom row collapses to a single pole point
	assert.Equal(t, 5*3+1, g.NumPoints())
	poles := 0
	for p := 0; p < g.NumPoints(); p++ {
		if g.VX[p] == 0 && g.VY[p] == 0 {
			poles++
		}
	}
	assert.Equal(t, 1, poles)

	// pole-row zones are triangles, everything else quads
	for z := 0; z < g.NumZones(); z++ {
		if z < gm.NzonesX {
			assert.Equal(t, 3, g.ZoneSize[z])
			assert.Equal(t, 0, g.ZonePts(z)[0])
		} else {
			assert.Equal(t, 4, g.ZoneSize[z])
		}
	}

	// outermost ring sits on the unit circle
	for p := g.NumPoints() - 5; p < g.NumPoints(); p++ {
		r := math.Hypot(g.VX[p], g.VY[p])
		assert.InDelta(t, leny, r, 1.e-12)
	}
}

func TestPieAngleTraversal(t *testing.T) {
	// angle decreases as i increases: the first point of the outer ring sits
	// at the full angle, the last on the x axis
	gm, err := NewGenerateMesh(Pie, 4, 2, math.Pi/2, 1., 1, 0)
	require.NoError(t, err)
	g := gm.Generate()
	first := g.NumPoints() - 5
	assert.InDelta(t, 0., g.VX[first], 1.e-12)
	assert.InDelta(t, 1., g.VY[first], 1.e-12)
	last := g.NumPoints() - 1
	assert.InDelta(t, 1., g.VX[last], 1.e-12)
	assert.InDelta(t, 0., g.VY[last], 1.e-12)
}

func TestPieMultiRank(t *testing.T) {
	for _, tc := range []struct{ nzx, nzy, np int }{
		{4, 4, 4},
		{8, 6, 4},
		{6, 4, 6},
	} {
		gms := buildAll(t, Pie, tc.nzx, tc.nzy, tc.np)
		for _, gm := range gms {
			g := gm.Generate()
			assertCRSWellFormed(t, g)
			if gm.ZoneYOffset == 0 {
				assert.Equal(t, gm.NumPointsX*(gm.NumPointsY-1)+1, g.NumPoints())
			} else {
				assert.Equal(t, gm.NumPointsX*gm.NumPointsY, g.NumPoints())
			}
		}
		assertHaloAligned(t, gms)
		assertGlobalIDCoverage(t, gms, globalPointCount(Pie, tc.nzx, tc.nzy))
	}
}

func TestPiePoleSharing(t *testing.T) {
	// 4x1 processor grid: every bottom-row rank holds the pole; rank 0
	// masters it to each of the others, rank 1 under the left relation,
	// ranks 2 and 3 under their own single-point relations
	gms := buildAll(t, Pie, 8, 2, 4)
	require.Equal(t, 4, gms[0].NumProcX)
	require.Equal(t, 1, gms[0].NumProcY)

	h0 := gms[0].GenerateHaloPoints()
	colors, lists := h0.MasterRelations()
	require.Equal(t, []int{1, 2, 3}, colors)
	assert.Equal(t, 0, lists[0][0]) // pole leads the edge relation to rank 1
	assert.Equal(t, []int{0}, lists[1])
	assert.Equal(t, []int{0}, lists[2])

	for color := 2; color < 4; color++ {
		h := gms[color].GenerateHaloPoints()
		sColors, sLists := h.SlaveRelations()
		require.Equal(t, []int{0, color - 1}, sColors)
		assert.Equal(t, []int{0}, sLists[0])
		assert.Equal(t, int64(0), gms[color].PointLocalToGlobalID(sLists[0][0]))
	}
}
