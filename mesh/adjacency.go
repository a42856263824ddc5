package mesh

import (
	"github.com/james-bowman/sparse"
)

// ZoneAdjacency classifies zone neighbor relations from the CRS connectivity.
// The zone -> point incidence is assembled as a DOK matrix, converted to CSR,
// and multiplied by its transpose: entry (z1, z2) counts the points shared by
// the two zones. Zones sharing two or more points are edge neighbors.
func ZoneAdjacency(g *Geometry) (neighbors [][]int) {
	var (
		nz = g.NumZones()
		np = g.NumPoints()
	)
	zToP := sparse.NewDOK(nz, np)
	for z := 0; z < nz; z++ {
		for _, p := range g.ZonePts(z) {
			zToP.Set(z, p, 1)
		}
	}
	shared := sparse.NewCSR(nz, nz, nil, nil, nil)
	csr := zToP.ToCSR()
	shared.Mul(csr, csr.T())

	neighbors = make([][]int, nz)
	shared.DoNonZero(func(z1, z2 int, v float64) {
		if z1 != z2 && v >= 2 {
			neighbors[z1] = append(neighbors[z1], z2)
		}
	})
	return
}
