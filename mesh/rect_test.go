package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectSinglePartition(t *testing.T) {
	var (
		lenx, leny = 3., 2.
	)
	gm, err := NewGenerateMesh(Rect, 3, 2, lenx, leny, 1, 0)
	require.NoError(t, err)
	g := gm.Generate()
	assertCRSWellFormed(t, g)

	assert.Equal(t, 12, g.NumPoints())
	assert.Equal(t, 6, g.NumZones())
	for z := 0; z < g.NumZones(); z++ {
		assert.Equal(t, 4, g.ZoneSize[z])
	}

	// raster (0,0) maps to coordinate (0,0), raster (3,2) to (lenx,leny)
	p00 := gm.LocalPerm.Perm[0]
	assert.Equal(t, 0.0, g.VX[p00])
	assert.Equal(t, 0.0, g.VY[p00])
	p32 := gm.LocalPerm.Perm[2*4+3]
	assert.Equal(t, lenx, g.VX[p32])
	assert.Equal(t, leny, g.VY[p32])

	// single rank: the local and global orderings coincide, so the global ID
	// mapping is the identity
	for p := 0; p < g.NumPoints(); p++ {
		assert.Equal(t, int64(p), gm.PointLocalToGlobalID(p))
	}

	// no neighbors, no halo
	h := gm.GenerateHaloPoints()
	assert.Empty(t, h.MasterColors)
	assert.Empty(t, h.SlaveColors)
	assert.Empty(t, h.SlavedPoints)
	assert.Empty(t, h.MasterPoints)
}

func TestRectZoneOrientation(t *testing.T) {
	gm, err := NewGenerateMesh(Rect, 4, 4, 2., 2., 1, 0)
	require.NoError(t, err)
	g := gm.Generate()
	// CCW vertex order gives positive shoelace areas, uniform dx*dy
	for _, area := range g.ZoneAreas() {
		assert.InDelta(t, 0.25, area, 1.e-12)
	}
}

func TestRectMultiRank(t *testing.T) {
	for _, tc := range []struct{ nzx, nzy, np int }{
		{4, 4, 4},
		{8, 6, 4},
		{6, 4, 6},
		{8, 2, 2},
	} {
		gms := buildAll(t, Rect, tc.nzx, tc.nzy, tc.np)
		for _, gm := range gms {
			assertCRSWellFormed(t, gm.Generate())
		}
		assertHaloAligned(t, gms)
		assertGlobalIDCoverage(t, gms, globalPointCount(Rect, tc.nzx, tc.nzy))
	}
}

func TestRectHaloCornerDedup(t *testing.T) {
	gms := buildAll(t, Rect, 4, 4, 4)
	// rank 3 at (1,1) slaves its lower-left corner point only under the
	// diagonal relation, not again under the below/left relations
	h := gms[3].GenerateHaloPoints()
	require.Equal(t, []int{0, 1, 2}, h.MasterColors)
	colors, lists := h.SlaveRelations()
	corner := lists[0][0]
	for i := 1; i < len(colors); i++ {
		assert.NotContains(t, lists[i], corner)
	}
	// edge relations drop the shared corner: 3 points per side minus 1
	assert.Equal(t, []int{1, 2, 2}, h.SlavedCounts)
}

func TestRectCrossRankProperty(t *testing.T) {
	// 2x2 processor grid: rank 0's "master points with slave to the right"
	// and rank 1's "slaved points with master to the left" are the same
	// boundary in the same order
	gms := buildAll(t, Rect, 4, 4, 4)
	h0 := gms[0].GenerateHaloPoints()
	h1 := gms[1].GenerateHaloPoints()

	mColors, mLists := h0.MasterRelations()
	require.Equal(t, 1, mColors[0])
	sColors, sLists := h1.SlaveRelations()
	require.Equal(t, 0, sColors[0])

	require.Equal(t, len(mLists[0]), len(sLists[0]))
	for n := range mLists[0] {
		assert.Equal(t, gms[0].PointLocalToGlobalID(mLists[0][n]),
			gms[1].PointLocalToGlobalID(sLists[0][n]))
	}
}

func TestZoneAdjacency(t *testing.T) {
	gm, err := NewGenerateMesh(Rect, 3, 3, 1., 1., 1, 0)
	require.NoError(t, err)
	g := gm.Generate()
	neighbors := ZoneAdjacency(g)
	require.Len(t, neighbors, 9)
	// corner zones have 2 edge neighbors, edge zones 3, the center 4
	assert.Len(t, neighbors[0], 2)
	assert.Len(t, neighbors[1], 3)
	assert.Len(t, neighbors[4], 4)
	assert.Contains(t, neighbors[4], 1)
	assert.Contains(t, neighbors[4], 3)
	assert.Contains(t, neighbors[4], 5)
	assert.Contains(t, neighbors[4], 7)
}
