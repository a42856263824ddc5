// Package polygas implements the gamma-law (polytropic) ideal gas model:
// per-zone equation of state and the half-step pressure advance used by the
// staggered-grid hydro cycle.
package polygas

import "math"

// CalcEOS computes pressure, the dp/de partial and sound speed for zones
// [zfirst, zlast) from density zr and specific internal energy ze.
// p = (gamma-1) * rho * e, with the sound speed floored at ssmin.
func CalcEOS(zr, ze, zp, z0per, zss []float64, zfirst, zlast int,
	gamma, ssmin float64) {
	var (
		gm1 = gamma - 1.
		ss2 = math.Max(ssmin*ssmin, 1.e-99)
	)
	for z := zfirst; z < zlast; z++ {
		z0 := z - zfirst
		rx := zr[z]
		ex := math.Max(ze[z], 0.0)
		px := gm1 * rx * ex
		prex := gm1 * ex
		perx := gm1 * rx
		csqd := math.Max(ss2, prex+perx*px/(rx*rx))
		zp[z] = px
		z0per[z0] = perx
		zss[z] = math.Sqrt(csqd)
	}
}

// CalcStateAtHalf advances zone pressure to the half step. zr0/zvol0 are the
// start-of-step density and volume, zvolp the predicted volume, zwrate the
// work rate from the previous cycle and zm the (constant) zone mass.
func CalcStateAtHalf(zr0, zvolp, zvol0, ze, zwrate, zm []float64, dt float64,
	zp, zss []float64, zfirst, zlast int, gamma, ssmin float64) {
	z0per := make([]float64, zlast-zfirst)
	dth := 0.5 * dt

	// EOS at the beginning of the time step
	CalcEOS(zr0, ze, zp, z0per, zss, zfirst, zlast, gamma, ssmin)

	// advance pressure to the half step
	for z := zfirst; z < zlast; z++ {
		z0 := z - zfirst
		zminv := 1. / zm[z]
		dv := (zvolp[z] - zvol0[z]) * zminv
		bulk := zr0[z] * zss[z] * zss[z]
		denom := 1. + 0.5*z0per[z0]*dv
		src := zwrate[z] * dth * zminv
		zp[z] += (z0per[z0]*src - zr0[z]*bulk*dv) / denom
	}
}
