package mesh

import "math"

// pieMesh is the polar topology: radius grows with j, angle decreases with i,
// and global row j == 0 collapses to a single pole point at the origin, making
// the innermost zone row triangles. Points are stored in raster order; only
// the global-ID mapping accounts for the reduced bottom row.
type pieMesh struct {
	*GenerateMesh
}

// numPoints is the local point count after the pole-row collapse.
func (m pieMesh) numPoints() int {
	if m.ProcIndexY == 0 {
		return m.NumPointsX*(m.NumPointsY-1) + 1
	}
	return m.NumPointsX * m.NumPointsY
}

func (m pieMesh) generate() (g *Geometry) {
	var (
		np  = m.numPoints()
		dth = m.LenX / float64(m.GlobalNzx)
		dr  = m.LenY / float64(m.GlobalNzy)
	)
	g = &Geometry{
		VX:         make([]float64, 0, np),
		VY:         make([]float64, 0, np),
		ZoneStart:  make([]int, 0, m.NumZones),
		ZoneSize:   make([]int, 0, m.NumZones),
		ZonePoints: make([]int, 0, 4*m.NumZones),
	}

	for j := 0; j < m.NumPointsY; j++ {
		if j+m.ZoneYOffset == 0 {
			g.addPoint(0, 0)
			continue
		}
		r := dr * float64(j+m.ZoneYOffset)
		for i := 0; i < m.NumPointsX; i++ {
			th := dth * float64(m.GlobalNzx-(i+m.ZoneXOffset))
			g.addPoint(r*math.Cos(th), r*math.Sin(th))
		}
	}

	for j := 0; j < m.NzonesY; j++ {
		for i := 0; i < m.NzonesX; i++ {
			p0 := j*m.NumPointsX + i
			if m.ProcIndexY == 0 {
				p0 -= m.NumPointsX - 1
			}
			if j+m.ZoneYOffset == 0 {
				g.addZone(0, p0+m.NumPointsX+1, p0+m.NumPointsX)
			} else {
				g.addZone(p0, p0+1, p0+m.NumPointsX+1, p0+m.NumPointsX)
			}
		}
	}
	return
}

func (m pieMesh) haloPoints() (h *Halo) {
	h = &Halo{}
	if m.NumRanks == 1 {
		return
	}

	h.SlavedPoints = make([]int, 0, b2i(m.ProcIndexY != 0)*m.NumPointsX+
		b2i(m.ProcIndexX != 0)*m.NumPointsY)
	h.MasterPoints = make([]int, 0, b2i(m.ProcIndexY != m.NumProcY-1)*m.NumPointsX+
		b2i(m.ProcIndexX != m.NumProcX-1)*m.NumPointsY+1)

	// slave point with master at lower left
	if m.ProcIndexX != 0 && m.ProcIndexY != 0 {
		h.addSlaveRelation(m.Color-m.NumProcX-1, 0)
	}
	// slave points with master below
	if m.ProcIndexY != 0 {
		pts := make([]int, 0, m.NumPointsX)
		p := 0
		for i := 0; i < m.NumPointsX; i++ {
			if i == 0 && m.ProcIndexX != 0 {
				p++
				continue
			}
			pts = append(pts, p)
			p++
		}
		h.addSlaveRelation(m.Color-m.NumProcX, pts...)
	}
	// slave points with master to left
	if m.ProcIndexX != 0 {
		var pts []int
		if m.ProcIndexY == 0 {
			// the pole point: every bottom-row rank shares it. Its master is
			// rank 0, which is only the immediate left neighbor for rank 1.
			if m.ProcIndexX > 1 {
				h.addSlaveRelation(0, 0)
			} else {
				pts = append(pts, 0)
			}
		}
		p := 1
		if m.ProcIndexY > 0 {
			p = m.NumPointsX
		}
		for j := 1; j < m.NumPointsY; j++ {
			pts = append(pts, p)
			p += m.NumPointsX
		}
		h.addSlaveRelation(m.Color-1, pts...)
	}

	// master points with slave to right
	if m.ProcIndexX != m.NumProcX-1 {
		var pts []int
		// the pole as master for the slave on rank 1
		if m.ProcIndexX == 0 && m.ProcIndexY == 0 {
			pts = append(pts, 0)
		}
		p := m.NumPointsX
		if m.ProcIndexY > 0 {
			p = 2*m.NumPointsX - 1
		}
		for j := 1; j < m.NumPointsY; j++ {
			pts = append(pts, p)
			p += m.NumPointsX
		}
		h.addMasterRelation(m.Color+1, pts...)
		// the pole as master for the slaves on ranks beyond 1
		if m.ProcIndexX == 0 && m.ProcIndexY == 0 {
			for slave := 2; slave < m.NumProcX; slave++ {
				h.addMasterRelation(slave, 0)
			}
		}
	}
	// master points with slave above
	if m.ProcIndexY != m.NumProcY-1 {
		pts := make([]int, 0, m.NumPointsX)
		p := (m.NumPointsY - 1) * m.NumPointsX
		if m.ProcIndexY == 0 {
			p -= m.NumPointsX - 1
		}
		for i := 0; i < m.NumPointsX; i++ {
			if i == 0 && m.ProcIndexX != 0 {
				p++
				continue
			}
			pts = append(pts, p)
			p++
		}
		h.addMasterRelation(m.Color+m.NumProcX, pts...)
	}
	// master point with slave at upper right
	if m.ProcIndexX != m.NumProcX-1 && m.ProcIndexY != m.NumProcY-1 {
		p := m.NumPointsX*m.NumPointsY - 1
		if m.ProcIndexY == 0 {
			p -= m.NumPointsX - 1
		}
		h.addMasterRelation(m.Color+m.NumProcX+1, p)
	}
	return
}

func (m pieMesh) pointLocalToGlobalID(p int) int64 {
	if m.ZoneYOffset == 0 && p == 0 {
		return 0
	}
	var px, py int
	if m.ZoneYOffset == 0 {
		py = (p-1)/m.NumPointsX + 1
		px = p - (py-1)*m.NumPointsX - 1
	} else {
		py = p / m.NumPointsX
		px = p - py*m.NumPointsX
	}
	return int64((m.GlobalNzx+1)*(py+m.ZoneYOffset-1) + 1 + px + m.ZoneXOffset)
}
