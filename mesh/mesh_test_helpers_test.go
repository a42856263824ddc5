package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildAll constructs every rank's generator for one configuration.
func buildAll(t *testing.T, mt MeshType, nzx, nzy int, numRanks int) (gms []*GenerateMesh) {
	t.Helper()
	gms = make([]*GenerateMesh, numRanks)
	for color := 0; color < numRanks; color++ {
		gm, err := NewGenerateMesh(mt, nzx, nzy, 1., 1., numRanks, color)
		require.NoError(t, err)
		gms[color] = gm
	}
	return
}

// assertCRSWellFormed checks the compressed zone adjacency invariants:
// non-decreasing starts, sizes consistent with starts, terminal sentinel.
func assertCRSWellFormed(t *testing.T, g *Geometry) {
	t.Helper()
	require.Equal(t, g.NumZones()+1, len(g.ZoneStart))
	for z := 0; z < g.NumZones(); z++ {
		require.LessOrEqual(t, g.ZoneStart[z], g.ZoneStart[z+1])
		require.Equal(t, g.ZoneSize[z], g.ZoneStart[z+1]-g.ZoneStart[z])
	}
	require.Equal(t, len(g.ZonePoints), g.ZoneStart[g.NumZones()])
	for _, p := range g.ZonePoints {
		require.GreaterOrEqual(t, p, 0)
		require.Less(t, p, g.NumPoints())
	}
}

// assertHaloAligned verifies the core cross-rank invariant: every master
// relation must be mirrored by a slave relation of the same length on the
// neighboring rank, and the two point sequences must identify the same global
// points in the same order.
func assertHaloAligned(t *testing.T, gms []*GenerateMesh) {
	t.Helper()
	halos := make([]*Halo, len(gms))
	for color, gm := range gms {
		halos[color] = gm.GenerateHaloPoints()
	}
	var totalMaster, totalSlaved int
	for color, h := range halos {
		mColors, mLists := h.MasterRelations()
		for i, slave := range mColors {
			require.Greater(t, slave, color, "masters always have lower colors")
			sColors, sLists := halos[slave].SlaveRelations()
			found := false
			for k, master := range sColors {
				if master != color {
					continue
				}
				require.False(t, found, "duplicate relation %d->%d", color, slave)
				found = true
				require.Equal(t, len(mLists[i]), len(sLists[k]),
					"relation %d->%d length", color, slave)
				for n := range mLists[i] {
					masterID := gms[color].PointLocalToGlobalID(mLists[i][n])
					slaveID := gms[slave].PointLocalToGlobalID(sLists[k][n])
					require.Equal(t, masterID, slaveID,
						"relation %d->%d position %d", color, slave, n)
				}
			}
			require.True(t, found, "no mirrored slave relation for %d->%d", color, slave)
		}
		totalMaster += len(h.MasterPoints)
		totalSlaved += len(h.SlavedPoints)
	}
	require.Equal(t, totalMaster, totalSlaved)
}

// assertGlobalIDCoverage verifies that the local-to-global mapping is
// injective per rank and that the ranks together cover every global point ID
// exactly, with shared points agreeing across ranks by construction.
func assertGlobalIDCoverage(t *testing.T, gms []*GenerateMesh, globalNumPoints int) {
	t.Helper()
	covered := make([]bool, globalNumPoints)
	for _, gm := range gms {
		g := gm.Generate()
		seen := make(map[int64]bool, g.NumPoints())
		for p := 0; p < g.NumPoints(); p++ {
			id := gm.PointLocalToGlobalID(p)
			require.GreaterOrEqual(t, id, int64(0))
			require.Less(t, id, int64(globalNumPoints))
			require.False(t, seen[id], "rank %d maps two points to ID %d", gm.Color, id)
			seen[id] = true
			covered[id] = true
		}
	}
	for id, ok := range covered {
		require.True(t, ok, "global ID %d not claimed by any rank", id)
	}
}

func globalPointCount(mt MeshType, nzx, nzy int) int {
	switch mt {
	case Rect:
		return (nzx + 1) * (nzy + 1)
	case Pie:
		return (nzx+1)*nzy + 1
	case Hex:
		return 2*(nzx+1) + (nzy-1)*2*nzx
	}
	panic("unknown mesh type")
}
