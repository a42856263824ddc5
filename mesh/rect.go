package mesh

// rectMesh is the quadrilateral topology: a regular grid of 2x2-point quads,
// with point storage reordered through the local mu permutation.
type rectMesh struct {
	*GenerateMesh
}

func (m rectMesh) generate() (g *Geometry) {
	var (
		np   = m.NumPointsX * m.NumPointsY
		perm = m.LocalPerm.Perm
		dx   = m.LenX / float64(m.GlobalNzx)
		dy   = m.LenY / float64(m.GlobalNzy)
	)
	g = &Geometry{
		VX:         make([]float64, np),
		VY:         make([]float64, np),
		ZoneStart:  make([]int, 0, m.NumZones),
		ZoneSize:   make([]int, 0, m.NumZones),
		ZonePoints: make([]int, 0, 4*m.NumZones),
	}

	for j := 0; j < m.NumPointsY; j++ {
		y := dy * float64(j+m.ZoneYOffset)
		for i := 0; i < m.NumPointsX; i++ {
			x := dx * float64(i+m.ZoneXOffset)
			g.VX[perm[j*m.NumPointsX+i]] = x
			g.VY[perm[j*m.NumPointsX+i]] = y
		}
	}

	// quads in CCW order: bottom-left, bottom-right, top-right, top-left
	for j := 0; j < m.NzonesY; j++ {
		for i := 0; i < m.NzonesX; i++ {
			p0 := j*m.NumPointsX + i
			g.addZone(perm[p0], perm[p0+1],
				perm[p0+m.NumPointsX+1], perm[p0+m.NumPointsX])
		}
	}
	return
}

func (m rectMesh) haloPoints() (h *Halo) {
	h = &Halo{}
	if m.NumRanks == 1 {
		return
	}
	perm := m.LocalPerm.Perm

	h.SlavedPoints = make([]int, 0, b2i(m.ProcIndexY > 0)*m.NumPointsX+
		b2i(m.ProcIndexX > 0)*m.NumPointsY)
	h.MasterPoints = make([]int, 0, b2i(m.ProcIndexY < m.NumProcY-1)*m.NumPointsX+
		b2i(m.ProcIndexX < m.NumProcX-1)*m.NumPointsY+1)

	// slave point with master at lower left
	if m.ProcIndexX > 0 && m.ProcIndexY > 0 {
		h.addSlaveRelation(m.Color-m.NumProcX-1, perm[0])
	}
	// slave points with master below
	if m.ProcIndexY > 0 {
		pts := make([]int, 0, m.NumPointsX)
		p := 0
		for i := 0; i < m.NumPointsX; i++ {
			if i == 0 && m.ProcIndexX != 0 {
				p++
				continue
			}
			pts = append(pts, perm[p])
			p++
		}
		h.addSlaveRelation(m.Color-m.NumProcX, pts...)
	}
	// slave points with master to left
	if m.ProcIndexX > 0 {
		pts := make([]int, 0, m.NumPointsY)
		p := 0
		for j := 0; j < m.NumPointsY; j++ {
			if j == 0 && m.ProcIndexY != 0 {
				p += m.NumPointsX
				continue
			}
			pts = append(pts, perm[p])
			p += m.NumPointsX
		}
		h.addSlaveRelation(m.Color-1, pts...)
	}

	// master points with slave to right
	if m.ProcIndexX < m.NumProcX-1 {
		pts := make([]int, 0, m.NumPointsY)
		p := m.NumPointsX - 1
		for j := 0; j < m.NumPointsY; j++ {
			if j == 0 && m.ProcIndexY != 0 {
				p += m.NumPointsX
				continue
			}
			pts = append(pts, perm[p])
			p += m.NumPointsX
		}
		h.addMasterRelation(m.Color+1, pts...)
	}
	// master points with slave above
	if m.ProcIndexY < m.NumProcY-1 {
		pts := make([]int, 0, m.NumPointsX)
		p := (m.NumPointsY - 1) * m.NumPointsX
		for i := 0; i < m.NumPointsX; i++ {
			if i == 0 && m.ProcIndexX > 0 {
				p++
				continue
			}
			pts = append(pts, perm[p])
			p++
		}
		h.addMasterRelation(m.Color+m.NumProcX, pts...)
	}
	// master point with slave at upper right
	if m.ProcIndexX < m.NumProcX-1 && m.ProcIndexY < m.NumProcY-1 {
		h.addMasterRelation(m.Color+m.NumProcX+1,
			perm[m.NumPointsX*m.NumPointsY-1])
	}
	return
}

func (m rectMesh) pointLocalToGlobalID(s int) int64 {
	// de-perm the storage index to this rank's raster position, shift to the
	// global raster, then re-perm through the global ordering
	var (
		p  = m.LocalPerm.Deperm[s]
		py = p / m.NumPointsX
		px = p - py*m.NumPointsX
	)
	return int64(m.GlobalPerm.Perm[(m.GlobalNzx+1)*(py+m.ZoneYOffset)+
		px+m.ZoneXOffset])
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
