package mesh

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
)

// PlotMesh renders one rank's zones as a fan-triangulated mesh. Each zone
// (triangle, quad, pentagon or hexagon) is fanned around its first vertex.
func PlotMesh(g *Geometry, plotPoints bool) (chart *chart2d.Chart2D) {
	var (
		points  []graphics2D.Point
		trimesh graphics2D.TriMesh
	)
	points = make([]graphics2D.Point, g.NumPoints())
	for i := range g.VX {
		points[i].X[0] = float32(g.VX[i])
		points[i].X[1] = float32(g.VY[i])
	}
	for z := 0; z < g.NumZones(); z++ {
		zp := g.ZonePts(z)
		for k := 1; k < len(zp)-1; k++ {
			var tri graphics2D.Triangle
			tri.Nodes[0] = int32(zp[0])
			tri.Nodes[1] = int32(zp[k])
			tri.Nodes[2] = int32(zp[k+1])
			trimesh.Triangles = append(trimesh.Triangles, tri)
			trimesh.Attributes = append(trimesh.Attributes, []float32{0, 0, 0})
		}
	}
	trimesh.Geometry = points
	box := graphics2D.NewBoundingBox(trimesh.GetGeometry())
	box = box.Scale(1.5)
	chart = chart2d.NewChart2D(1920, 1920, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
	colorMap := utils2.NewColorMap(0, 1, 1)
	chart.AddColorMap(colorMap)
	go chart.Plot()
	white := color.RGBA{
		R: 255,
		G: 255,
		B: 255,
		A: 0,
	}
	black := color.RGBA{
		R: 0,
		G: 0,
		B: 0,
		A: 0,
	}
	if err := chart.AddTriMesh("Mesh", trimesh,
		chart2d.CrossGlyph, chart2d.Solid, white); err != nil {
		panic("unable to add graph series")
	}
	if plotPoints {
		if err := chart.AddSeries("Points", g.VX, g.VY,
			chart2d.CircleGlyph, chart2d.NoLine, black); err != nil {
			panic("unable to add graph series")
		}
	}
	return
}
