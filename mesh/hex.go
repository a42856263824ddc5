package mesh

// hexMesh is the hexagonal topology. Each interior grid position carries two
// points skewed by +-(dx/6, dy/6) so that zones become hexagons; positions on
// the outer mesh boundary collapse to a single point, as do the two inner
// corner positions adjacent to the boundary. Zones touching the global edges
// lose vertices and degenerate to pentagons, quads or triangles.
type hexMesh struct {
	*GenerateMesh
}

// doubled reports whether local position (i, j) stores two points.
func (m hexMesh) doubled(i, j int) bool {
	var (
		gi = i + m.ZoneXOffset
		gj = j + m.ZoneYOffset
	)
	if gi == 0 || gi == m.GlobalNzx || gj == 0 || gj == m.GlobalNzy {
		return false
	}
	// inner corners adjacent to the outer boundary
	if i == m.NzonesX && j == 0 {
		return false
	}
	if i == 0 && j == m.NzonesY {
		return false
	}
	return true
}

// pointBases returns the storage index of the first point in each local point
// row, plus the total local point count.
func (m hexMesh) pointBases() (pbase []int, np int) {
	pbase = make([]int, m.NumPointsY)
	for j := 0; j < m.NumPointsY; j++ {
		pbase[j] = np
		for i := 0; i < m.NumPointsX; i++ {
			if m.doubled(i, j) {
				np += 2
			} else {
				np++
			}
		}
	}
	return
}

func (m hexMesh) generate() (g *Geometry) {
	var (
		dx = m.LenX / float64(m.GlobalNzx-1)
		dy = m.LenY / float64(m.GlobalNzy-1)
	)
	g = &Geometry{
		VX:         make([]float64, 0, 2*m.NumPointsX*m.NumPointsY), // upper bound
		VY:         make([]float64, 0, 2*m.NumPointsX*m.NumPointsY),
		ZoneStart:  make([]int, 0, m.NumZones),
		ZoneSize:   make([]int, 0, m.NumZones),
		ZonePoints: make([]int, 0, 6*m.NumZones), // upper bound
	}

	pbase := make([]int, m.NumPointsY)
	for j := 0; j < m.NumPointsY; j++ {
		pbase[j] = g.NumPoints()
		gj := j + m.ZoneYOffset
		y := dy * (float64(gj) - 0.5)
		y = max(0, min(m.LenY, y))
		for i := 0; i < m.NumPointsX; i++ {
			gi := i + m.ZoneXOffset
			x := dx * (float64(gi) - 0.5)
			x = max(0, min(m.LenX, x))
			switch {
			case gi == 0 || gi == m.GlobalNzx || gj == 0 || gj == m.GlobalNzy:
				g.addPoint(x, y)
			case i == m.NzonesX && j == 0:
				g.addPoint(x-dx/6, y+dy/6)
			case i == 0 && j == m.NzonesY:
				g.addPoint(x+dx/6, y-dy/6)
			default:
				g.addPoint(x-dx/6, y+dy/6)
				g.addPoint(x+dx/6, y-dy/6)
			}
		}
	}

	verts := make([]int, 0, 6)
	for j := 0; j < m.NzonesY; j++ {
		var (
			gj     = j + m.ZoneYOffset
			pbasel = pbase[j]
			pbaseh = pbase[j+1]
		)
		if m.ProcIndexX > 0 {
			// skip the collapsed left-column point of the overlapped rows
			if gj > 0 {
				pbasel++
			}
			if j < m.NzonesY-1 {
				pbaseh++
			}
		}
		for i := 0; i < m.NzonesX; i++ {
			var (
				gi = i + m.ZoneXOffset
				// full hexagon template, CCW from the lower-left vertex
				v1 = pbasel + 2*i
				v0 = v1 - 1
				v2 = v1 + 1
				v5 = pbaseh + 2*i
				v4 = v5 + 1
				v3 = v4 + 1
			)
			verts = verts[:0]
			switch {
			case gj == 0:
				// bottom row: single point below, no v1
				v0 = pbasel + i
				v2 = v0 + 1
				verts = append(verts, v0, v2)
				if gi != m.GlobalNzx-1 {
					verts = append(verts, v3)
				}
				verts = append(verts, v4, v5)
			case gj == m.GlobalNzy-1:
				// top row: single point above, no v4
				v5 = pbaseh + i
				v3 = v5 + 1
				if gi != 0 {
					verts = append(verts, v0)
				}
				verts = append(verts, v1, v2, v3, v5)
			case gi == 0:
				verts = append(verts, v1, v2, v3, v4, v5)
			case gi == m.GlobalNzx-1:
				verts = append(verts, v0, v1, v2, v4, v5)
			default:
				verts = append(verts, v0, v1, v2, v3, v4, v5)
			}
			g.addZone(verts...)
		}
	}
	return
}

func (m hexMesh) haloPoints() (h *Halo) {
	h = &Halo{}
	if m.NumRanks == 1 {
		return
	}
	pbase, np := m.pointBases()

	h.SlavedPoints = make([]int, 0, b2i(m.ProcIndexY != 0)*2*m.NumPointsX+
		b2i(m.ProcIndexX != 0)*2*m.NumPointsY)
	h.MasterPoints = make([]int, 0, b2i(m.ProcIndexY != m.NumProcY-1)*2*m.NumPointsX+
		b2i(m.ProcIndexX != m.NumProcX-1)*2*m.NumPointsY+2)

	// slave points with master at lower left
	if m.ProcIndexX != 0 && m.ProcIndexY != 0 {
		h.addSlaveRelation(m.Color-m.NumProcX-1, 0, 1)
	}
	// slave points with master below
	if m.ProcIndexY != 0 {
		pts := make([]int, 0, 2*m.NumPointsX)
		p := 0
		for i := 0; i < m.NumPointsX; i++ {
			if i == 0 && m.ProcIndexX != 0 {
				p += 2
				continue
			}
			if i == 0 || i == m.NzonesX {
				pts = append(pts, p)
				p++
			} else {
				pts = append(pts, p, p+1)
				p += 2
			}
		}
		h.addSlaveRelation(m.Color-m.NumProcX, pts...)
	}
	// slave points with master to left
	if m.ProcIndexX != 0 {
		pts := make([]int, 0, 2*m.NumPointsY)
		for j := 0; j < m.NumPointsY; j++ {
			if j == 0 && m.ProcIndexY != 0 {
				continue
			}
			p := pbase[j]
			if j == 0 || j == m.NzonesY {
				pts = append(pts, p)
			} else {
				pts = append(pts, p, p+1)
			}
		}
		h.addSlaveRelation(m.Color-1, pts...)
	}

	// master points with slave to right
	if m.ProcIndexX != m.NumProcX-1 {
		pts := make([]int, 0, 2*m.NumPointsY)
		for j := 0; j < m.NumPointsY; j++ {
			if j == 0 && m.ProcIndexY != 0 {
				continue
			}
			p := np
			if j != m.NzonesY {
				p = pbase[j+1]
			}
			if j == 0 || j == m.NzonesY {
				pts = append(pts, p-1)
			} else {
				pts = append(pts, p-2, p-1)
			}
		}
		h.addMasterRelation(m.Color+1, pts...)
	}
	// master points with slave above
	if m.ProcIndexY != m.NumProcY-1 {
		pts := make([]int, 0, 2*m.NumPointsX)
		p := pbase[m.NzonesY]
		for i := 0; i < m.NumPointsX; i++ {
			if i == 0 && m.ProcIndexX != 0 {
				p++
				continue
			}
			if i == 0 || i == m.NzonesX {
				pts = append(pts, p)
				p++
			} else {
				pts = append(pts, p, p+1)
				p += 2
			}
		}
		h.addMasterRelation(m.Color+m.NumProcX, pts...)
	}
	// master points with slave at upper right
	if m.ProcIndexX != m.NumProcX-1 && m.ProcIndexY != m.NumProcY-1 {
		h.addMasterRelation(m.Color+m.NumProcX+1, np-2, np-1)
	}
	return
}

// numPointsPreviousRows counts the global points in rows 0..gj-1. The bottom
// global row holds GlobalNzx+1 collapsed points, every other interior row
// holds 2*GlobalNzx.
func (m hexMesh) numPointsPreviousRows(gj int) int64 {
	return int64(m.GlobalNzx + 1 + (gj-1)*2*m.GlobalNzx)
}

func (m hexMesh) pointLocalToGlobalID(p int) int64 {
	var (
		zoneYStart = m.yStart(m.ProcIndexY)
		zoneYStop  = m.yStart(m.ProcIndexY + 1)
		zoneXStart = m.xStart(m.ProcIndexX)
		zoneXStop  = m.xStart(m.ProcIndexX + 1)
	)

	firstRowNpts := 2 * m.NumPointsX
	midRowsNpts := 2 * m.NumPointsX
	if zoneYStart == 0 {
		firstRowNpts = m.NumPointsX
	} else {
		if zoneXStart == 0 {
			firstRowNpts--
		}
		// lower right corner collapses
		firstRowNpts--
	}
	if zoneXStart == 0 {
		midRowsNpts--
	}
	if zoneXStop == m.GlobalNzx {
		midRowsNpts--
	}

	var i, j int
	if p < firstRowNpts {
		j = 0
		i = p
	} else {
		j = (p-firstRowNpts)/midRowsNpts + 1
		i = p - firstRowNpts - (j-1)*midRowsNpts
	}

	gj := j + m.ZoneYOffset

	var globalID int64
	if gj != 0 {
		globalID = m.numPointsPreviousRows(gj)
	}
	if gj == 0 || gj == m.GlobalNzy {
		globalID += int64(m.ZoneXOffset)
	} else if m.ZoneXOffset != 0 {
		globalID += int64(2*m.ZoneXOffset - 1)
	}
	globalID += int64(i)

	// the upper left corner of a non-boundary rank skips a point
	if gj == zoneYStop && zoneXStart != 0 && gj != 0 && gj != m.GlobalNzy {
		globalID++
	}
	return globalID
}
