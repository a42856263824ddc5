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
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/npandachg/PENNANT/InputParameters"
	"github.com/npandachg/PENNANT/parallel"
	"github.com/npandachg/PENNANT/polygas"
)

type RunModel struct {
	DeckFile string
	Np       int
	Profile  bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the SPMD hydro cycle across all ranks in process",
	Long: `Generate every rank's mesh and halo lists, then drive the gas EOS
cycle with halo point exchange and global reductions each step`,
	Run: func(cmd *cobra.Command, args []string) {
		rm := &RunModel{}
		rm.DeckFile, _ = cmd.Flags().GetString("deckFile")
		rm.Np, _ = cmd.Flags().GetInt("np")
		rm.Profile, _ = cmd.Flags().GetBool("profile")
		ip := processInput(rm.DeckFile)
		if rm.Np > 0 {
			ip.Ntasks = rm.Np
		}
		if rm.Profile {
			defer profile.Start().Stop()
		}
		RunCycle(rm, ip)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("deckFile", "I", "", "YAML input deck")
	RunCmd.Flags().IntP("np", "n", 0, "override the deck's rank count")
	RunCmd.Flags().BoolP("profile", "p", false, "write a CPU profile")
}

func RunCycle(rm *RunModel, ip *InputParameters.InputParameters) {
	ip.Print()
	rt := parallel.NewRuntime(ip.Ntasks)
	rt.Run(func(ctx *parallel.RankContext) {
		gm := newGenerateMesh(ip, ctx.Color)
		g := gm.Generate()
		h := gm.GenerateHaloPoints()

		area := ctx.GlobalSum(floats.Sum(g.ZoneAreas()))
		if ctx.Color == 0 {
			log.Infof("%d ranks on a %dx%d grid, total mesh area %g",
				ctx.NumRanks(), gm.NumProcX, gm.NumProcY, area)
		}

		var (
			nz  = g.NumZones()
			zr  = make([]float64, nz) // density
			ze  = make([]float64, nz) // specific internal energy
			zp  = make([]float64, nz) // pressure
			zss = make([]float64, nz) // sound speed
			zwr = make([]float64, nz) // work rate
			zm  = make([]float64, nz) // zone mass
			pe  = make([]float64, g.NumPoints())
		)
		vol := g.ZoneAreas()
		for z := 0; z < nz; z++ {
			zr[z] = 1.
			ze[z] = 1. + float64(ctx.Color)
			zm[z] = zr[z] * vol[z]
		}

		for cycle := 0; cycle < ip.Cycles; cycle++ {
			polygas.CalcStateAtHalf(zr, vol, vol, ze, zwr, zm, ip.Dt,
				zp, zss, 0, nz, ip.Gamma, ip.Ssmin)

			// scatter zone pressure to points, then refresh slaved copies so
			// duplicated boundary points agree across ranks
			for p := range pe {
				pe[p] = 0
			}
			for z := 0; z < nz; z++ {
				for _, p := range g.ZonePts(z) {
					pe[p] = max(pe[p], zp[z])
				}
			}
			ctx.HaloExchange(h, pe)

			dt := ctx.GlobalMin(ip.Dt / floats.Max(zss))
			if ctx.Color == 0 {
				log.Infof("cycle %3d: dt %.6e, max point pressure %g",
					cycle, dt, floats.Max(pe))
			}
		}
	})
}
