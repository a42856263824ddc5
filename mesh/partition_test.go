package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcPartitions(t *testing.T) {
	{ // the planner always factors the rank count exactly
		for _, nz := range [][2]int{{1, 1}, {4, 4}, {100, 50}, {17, 3}, {3, 17}, {1000, 1}} {
			for p := 1; p <= 24; p++ {
				px, py := calcPartitions(nz[0], nz[1], p)
				assert.GreaterOrEqual(t, px, 1)
				assert.GreaterOrEqual(t, py, 1)
				assert.Equal(t, p, px*py)
			}
		}
	}
	{ // square zone grid on 4 ranks splits 2x2
		px, py := calcPartitions(48, 48, 4)
		assert.Equal(t, 2, px)
		assert.Equal(t, 2, py)
	}
	{ // the long axis gets the larger processor count
		px, py := calcPartitions(100, 50, 2)
		assert.Equal(t, 2, px)
		assert.Equal(t, 1, py)
		px, py = calcPartitions(50, 100, 2)
		assert.Equal(t, 1, px)
		assert.Equal(t, 2, py)
	}
	{ // 6 ranks on a 6x4 grid prefer 3x2
		px, py := calcPartitions(6, 4, 6)
		assert.Equal(t, 3, px)
		assert.Equal(t, 2, py)
	}
}

func TestSplitRange(t *testing.T) {
	for _, tc := range [][2]int{{12, 4}, {13, 4}, {7, 3}, {5, 5}, {9, 1}} {
		n, p := tc[0], tc[1]
		var total int
		prevEnd := 0
		for k := 0; k < p; k++ {
			offset, count := splitRange(k, n, p)
			assert.Equal(t, prevEnd, offset)
			prevEnd = offset + count
			total += count
		}
		assert.Equal(t, n, total)
	}
}

func TestLocalConstants(t *testing.T) {
	gm, err := NewGenerateMesh(Rect, 8, 6, 1., 1., 4, 3)
	require.NoError(t, err)
	// 4 ranks on 8x6 zones: 2x2 processor grid, color 3 sits at (1,1)
	assert.Equal(t, 2, gm.NumProcX)
	assert.Equal(t, 2, gm.NumProcY)
	assert.Equal(t, 1, gm.ProcIndexX)
	assert.Equal(t, 1, gm.ProcIndexY)
	assert.Equal(t, 4, gm.ZoneXOffset)
	assert.Equal(t, 3, gm.ZoneYOffset)
	assert.Equal(t, 4, gm.NzonesX)
	assert.Equal(t, 3, gm.NzonesY)
	assert.Equal(t, 12, gm.NumZones)
	assert.Equal(t, 5, gm.NumPointsX)
	assert.Equal(t, 4, gm.NumPointsY)
	assert.Equal(t, (8+1)*(6+1), gm.GlobalPerm.Len())
	assert.Equal(t, 5*4, gm.LocalPerm.Len())
}

func TestLocalConstantsIdempotent(t *testing.T) {
	build := func() *GenerateMesh {
		gm, err := NewGenerateMesh(Hex, 8, 8, 1., 1., 4, 2)
		require.NoError(t, err)
		return gm
	}
	gm1, gm2 := build(), build()
	assert.Equal(t, gm1.GlobalPerm, gm2.GlobalPerm)
	assert.Equal(t, gm1.LocalPerm, gm2.LocalPerm)
	assert.Equal(t, gm1.ZoneXOffset, gm2.ZoneXOffset)
	assert.Equal(t, gm1.ZoneYOffset, gm2.ZoneYOffset)
	assert.Equal(t, gm1.NzonesX, gm2.NzonesX)
	assert.Equal(t, gm1.NzonesY, gm2.NzonesY)
}

func TestConfigErrors(t *testing.T) {
	_, err := NewGenerateMesh(Rect, 0, 4, 1., 1., 1, 0)
	assert.Error(t, err)
	_, err = NewGenerateMesh(Rect, 4, 4, -1., 1., 1, 0)
	assert.Error(t, err)
	_, err = NewGenerateMesh(Rect, 4, 4, 1., 1., 0, 0)
	assert.Error(t, err)
	_, err = NewGenerateMesh(Rect, 4, 4, 1., 1., 2, 2)
	assert.Error(t, err)
	_, err = NewGenerateMesh(Hex, 1, 4, 1., 1., 1, 0)
	assert.Error(t, err)
	// ranks must divide the zone grid for the blocked global ordering
	_, err = NewGenerateMesh(Rect, 5, 4, 1., 1., 4, 0)
	assert.Error(t, err)
	_, err = NewMeshType("triangle")
	assert.Error(t, err)
}
