package mesh

import (
	"fmt"
	"strings"
)

type MeshType uint8

const (
	Rect MeshType = iota
	Pie
	Hex
)

var meshTypeNames = map[MeshType]string{
	Rect: "rect",
	Pie:  "pie",
	Hex:  "hex",
}

func (mt MeshType) String() (name string) {
	return meshTypeNames[mt]
}

func NewMeshType(label string) (mt MeshType, err error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "rect":
		mt = Rect
	case "pie":
		mt = Pie
	case "hex":
		mt = Hex
	default:
		err = fmt.Errorf("unrecognized mesh type %q, must be one of rect, pie, hex", label)
	}
	return
}

// Geometry is the generator output for one rank: point coordinates in storage
// order and the zone -> point adjacency in compressed (CRS) form.
// ZoneStart carries a terminal sentinel so that the points of zone z are
// always ZonePoints[ZoneStart[z]:ZoneStart[z+1]].
type Geometry struct {
	VX, VY     []float64
	ZoneStart  []int
	ZoneSize   []int
	ZonePoints []int
}

func (g *Geometry) NumPoints() int { return len(g.VX) }
func (g *Geometry) NumZones() int  { return len(g.ZoneSize) }

func (g *Geometry) ZonePts(z int) []int {
	return g.ZonePoints[g.ZoneStart[z]:g.ZoneStart[z+1]]
}

// ZoneAreas computes the signed-shoelace area of every zone. Zone vertices
// are emitted CCW, so the results are positive for well-formed zones.
func (g *Geometry) ZoneAreas() (areas []float64) {
	areas = make([]float64, g.NumZones())
	for z := range areas {
		zp := g.ZonePts(z)
		var sum float64
		for k, p := range zp {
			q := zp[(k+1)%len(zp)]
			sum += g.VX[p]*g.VY[q] - g.VX[q]*g.VY[p]
		}
		areas[z] = 0.5 * sum
	}
	return
}

func (g *Geometry) addPoint(x, y float64) {
	g.VX = append(g.VX, x)
	g.VY = append(g.VY, y)
}

func (g *Geometry) addZone(pts ...int) {
	g.ZoneStart = append(g.ZoneStart, len(g.ZonePoints))
	g.ZoneSize = append(g.ZoneSize, len(pts))
	g.ZonePoints = append(g.ZonePoints, pts...)
}

// Halo lists the points this rank shares with neighboring ranks, grouped by
// neighbor color in a fixed relation order. The slave side holds points whose
// authoritative value lives on a lower-ranked neighbor; the master side holds
// points this rank must publish. The per-relation point sequences are
// position-aligned with the mirrored relation enumerated by the neighbor,
// which is what lets the transport pair values without any index exchange.
type Halo struct {
	MasterColors []int
	SlavedCounts []int
	SlavedPoints []int

	SlaveColors   []int
	MasterCounts  []int
	MasterPoints  []int
}

func (h *Halo) addSlaveRelation(masterColor int, pts ...int) {
	h.MasterColors = append(h.MasterColors, masterColor)
	h.SlavedCounts = append(h.SlavedCounts, len(pts))
	h.SlavedPoints = append(h.SlavedPoints, pts...)
}

func (h *Halo) addMasterRelation(slaveColor int, pts ...int) {
	h.SlaveColors = append(h.SlaveColors, slaveColor)
	h.MasterCounts = append(h.MasterCounts, len(pts))
	h.MasterPoints = append(h.MasterPoints, pts...)
}

// SlaveRelations splits SlavedPoints back into one point list per master
// color, in enumeration order.
func (h *Halo) SlaveRelations() (colors []int, lists [][]int) {
	return h.MasterColors, splitCounts(h.SlavedPoints, h.SlavedCounts)
}

// MasterRelations splits MasterPoints into one point list per slave color.
func (h *Halo) MasterRelations() (colors []int, lists [][]int) {
	return h.SlaveColors, splitCounts(h.MasterPoints, h.MasterCounts)
}

func splitCounts(points, counts []int) (lists [][]int) {
	lists = make([][]int, len(counts))
	var at int
	for i, n := range counts {
		lists[i] = points[at : at+n]
		at += n
	}
	if at != len(points) {
		panic(fmt.Errorf("halo counts sum to %d, have %d points", at, len(points)))
	}
	return
}

// topology is the closed set of mesh families. Each implementation produces
// this rank's geometry, enumerates its halo points and maps local storage
// indices to globally unique point IDs.
type topology interface {
	generate() *Geometry
	haloPoints() *Halo
	pointLocalToGlobalID(p int) int64
}

// GenerateMesh builds the geometric and topological description of one
// rank's part of a structured 2-D mesh. All fields are computed once at
// construction and read-only afterward.
type GenerateMesh struct {
	Meshtype             MeshType
	GlobalNzx, GlobalNzy int
	LenX, LenY           float64
	NumRanks             int
	Color                int

	// partition plan
	NumProcX, NumProcY int

	// local constants for this rank
	ProcIndexX, ProcIndexY   int
	ZoneXOffset, ZoneYOffset int
	NzonesX, NzonesY         int
	NumZones                 int
	NumPointsX, NumPointsY   int

	GlobalPerm Permutation
	LocalPerm  Permutation

	topo topology
}

func NewGenerateMesh(meshtype MeshType, globalNzx, globalNzy int,
	lenX, lenY float64, numRanks, color int) (gm *GenerateMesh, err error) {
	switch {
	case globalNzx < 1 || globalNzy < 1:
		err = fmt.Errorf("invalid zone counts %dx%d, both must be positive",
			globalNzx, globalNzy)
		return
	case lenX <= 0 || lenY <= 0:
		err = fmt.Errorf("invalid mesh extents %gx%g, both must be positive",
			lenX, lenY)
		return
	case numRanks < 1:
		err = fmt.Errorf("invalid rank count %d", numRanks)
		return
	case color < 0 || color >= numRanks:
		err = fmt.Errorf("color %d out of range for %d ranks", color, numRanks)
		return
	case meshtype == Hex && (globalNzx < 2 || globalNzy < 2):
		err = fmt.Errorf("hex mesh needs at least 2x2 zones, have %dx%d",
			globalNzx, globalNzy)
		return
	}
	gm = &GenerateMesh{
		Meshtype:  meshtype,
		GlobalNzx: globalNzx,
		GlobalNzy: globalNzy,
		LenX:      lenX,
		LenY:      lenY,
		NumRanks:  numRanks,
		Color:     color,
	}
	gm.NumProcX, gm.NumProcY = calcPartitions(globalNzx, globalNzy, numRanks)
	if err = gm.calcLocalConstants(); err != nil {
		gm = nil
		return
	}
	switch meshtype {
	case Rect:
		gm.topo = rectMesh{gm}
	case Pie:
		gm.topo = pieMesh{gm}
	case Hex:
		gm.topo = hexMesh{gm}
	}
	return
}

// Generate computes this rank's point coordinates and zone connectivity and
// appends the terminal CRS sentinel.
func (gm *GenerateMesh) Generate() (g *Geometry) {
	g = gm.topo.generate()
	last := len(g.ZoneStart) - 1
	g.ZoneStart = append(g.ZoneStart, g.ZoneStart[last]+g.ZoneSize[last])
	return
}

// GenerateHaloPoints enumerates the slave and master point lists for every
// neighboring rank. With a single rank the halo is empty.
func (gm *GenerateMesh) GenerateHaloPoints() (h *Halo) {
	return gm.topo.haloPoints()
}

// PointLocalToGlobalID maps a local storage-order point index to the globally
// unique point ID consistent with the global mu ordering.
func (gm *GenerateMesh) PointLocalToGlobalID(p int) int64 {
	return gm.topo.pointLocalToGlobalID(p)
}
