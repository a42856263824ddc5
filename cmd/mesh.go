/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/npandachg/PENNANT/InputParameters"
	"github.com/npandachg/PENNANT/mesh"
)

type MeshModel struct {
	DeckFile string
	Color    int
	Plot     bool
	Delay    time.Duration
}

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Generate and inspect one rank's part of the decomposed mesh",
	Long: `Generate one rank's points, zones and halo point lists and print a
summary, optionally rendering the local mesh`,
	Run: func(cmd *cobra.Command, args []string) {
		mm := &MeshModel{}
		mm.DeckFile, _ = cmd.Flags().GetString("deckFile")
		mm.Color, _ = cmd.Flags().GetInt("color")
		mm.Plot, _ = cmd.Flags().GetBool("plot")
		dr, _ := cmd.Flags().GetInt("delay")
		mm.Delay = time.Duration(dr) * time.Millisecond
		ip := processInput(mm.DeckFile)
		RunMesh(mm, ip)
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("deckFile", "I", "", "YAML input deck, see 'pennant mesh --help' for an example")
	MeshCmd.Flags().IntP("color", "c", 0, "rank color to generate the mesh for")
	MeshCmd.Flags().BoolP("plot", "g", false, "render the local mesh")
	MeshCmd.Flags().IntP("delay", "d", 5000, "milliseconds to keep the plot window open")
}

func processInput(deckFile string) (ip *InputParameters.InputParameters) {
	if len(deckFile) == 0 {
		fmt.Printf("error: must supply an input deck (-I, --deckFile) in YAML format\n")
		exampleFile := `
########################################
Title: "Sedov on 4 ranks"
Meshtype: rect
Nzx: 48
Nzy: 48
Lenx: 1.
Leny: 1.
Ntasks: 4
Gamma: 1.6666666666666667
Ssmin: 0.01
Dt: 2.5e-3
Cycles: 10
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(deckFile)
	if err != nil {
		log.Fatalf("unable to read input deck: %v", err)
	}
	ip = &InputParameters.InputParameters{}
	if err = ip.Parse(data); err != nil {
		log.Fatalf("unable to parse input deck %s: %v", deckFile, err)
	}
	return
}

func newGenerateMesh(ip *InputParameters.InputParameters, color int) (gm *mesh.GenerateMesh) {
	mt, err := mesh.NewMeshType(ip.Meshtype)
	if err != nil {
		log.Fatalf("invalid mesh configuration: %v", err)
	}
	gm, err = mesh.NewGenerateMesh(mt, ip.Nzx, ip.Nzy, ip.Lenx, ip.Leny,
		ip.Ntasks, color)
	if err != nil {
		log.Fatalf("invalid mesh configuration: %v", err)
	}
	return
}

func RunMesh(mm *MeshModel, ip *InputParameters.InputParameters) {
	ip.Print()
	gm := newGenerateMesh(ip, mm.Color)
	log.Infof("processor grid %dx%d, rank %d at (%d,%d)",
		gm.NumProcX, gm.NumProcY, gm.Color, gm.ProcIndexX, gm.ProcIndexY)

	g := gm.Generate()
	h := gm.GenerateHaloPoints()
	log.Infof("local mesh: %d points, %d zones, %d zone vertices",
		g.NumPoints(), g.NumZones(), len(g.ZonePoints))
	log.Infof("local extent: x [%g, %g], y [%g, %g]",
		floats.Min(g.VX), floats.Max(g.VX), floats.Min(g.VY), floats.Max(g.VY))
	log.Infof("halo: %d slaved points from %d masters, %d master points to %d slaves",
		len(h.SlavedPoints), len(h.MasterColors),
		len(h.MasterPoints), len(h.SlaveColors))

	colors, lists := h.SlaveRelations()
	for i, master := range colors {
		fmt.Printf("slaved to %4d: %v\n", master, lists[i])
	}
	colors, lists = h.MasterRelations()
	for i, slave := range colors {
		fmt.Printf("master for %3d: %v\n", slave, lists[i])
	}
	fmt.Printf("global IDs of first points: ")
	for p := 0; p < min(8, g.NumPoints()); p++ {
		fmt.Printf("%d ", gm.PointLocalToGlobalID(p))
	}
	fmt.Printf("\n")

	if mm.Plot {
		mesh.PlotMesh(g, true)
		time.Sleep(mm.Delay)
	}
}
