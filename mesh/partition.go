package mesh

import "math"

// calcPartitions picks numProcX, numProcY such that the local subregions are
// as close to square as possible, i.e. globalNzx/numProcX == globalNzy/numProcY
// with numProcX*numProcY == numRanks. This solves to
// numProcX = sqrt(numRanks * globalNzx / globalNzy); we compute it assuming
// nzx <= nzy and swap back afterward. The ideal split is constrained to an
// integer divisor of numRanks by trying the rounded-down and rounded-up
// candidates and keeping whichever gives the shortest long side of a
// subregion.
func calcPartitions(globalNzx, globalNzy, numRanks int) (numProcX, numProcY int) {
	var (
		nx, ny   = float64(globalNzx), float64(globalNzy)
		swapflag = nx > ny
	)
	if swapflag {
		nx, ny = ny, nx
	}
	n := math.Sqrt(float64(numRanks) * nx / ny)
	// constrain n to an integer with numRanks % n == 0, rounding both ways
	n1 := int(math.Floor(n + 1.e-12))
	n1 = max(n1, 1)
	for numRanks%n1 != 0 {
		n1--
	}
	n2 := int(math.Ceil(n - 1.e-12))
	for numRanks%n2 != 0 {
		n2++
	}
	longside1 := math.Max(nx/float64(n1), ny/float64(numRanks/n1))
	longside2 := math.Max(nx/float64(n2), ny/float64(numRanks/n2))
	if longside1 <= longside2 {
		numProcX = n1
	} else {
		numProcX = n2
	}
	numProcY = numRanks / numProcX
	if swapflag {
		numProcX, numProcY = numProcY, numProcX
	}
	return
}

// splitRange evenly splits n zones across p parts; part k owns
// [k*n/p, (k+1)*n/p). The parts are only perfectly equal when p divides n;
// the mu permutation over the blocked global grid requires exactly that, and
// the constructor rejects configurations that violate it.
func splitRange(k, n, p int) (offset, count int) {
	offset = k * n / p
	count = (k+1)*n/p - offset
	return
}

func (gm *GenerateMesh) xStart(procIndexX int) (offset int) {
	offset, _ = splitRange(procIndexX, gm.GlobalNzx, gm.NumProcX)
	return
}

func (gm *GenerateMesh) yStart(procIndexY int) (offset int) {
	offset, _ = splitRange(procIndexY, gm.GlobalNzy, gm.NumProcY)
	return
}

// calcLocalConstants derives this rank's grid position, zone extents and both
// permutations from the partition plan.
func (gm *GenerateMesh) calcLocalConstants() (err error) {
	gm.ProcIndexX = gm.Color % gm.NumProcX
	gm.ProcIndexY = gm.Color / gm.NumProcX

	gm.ZoneXOffset, gm.NzonesX = splitRange(gm.ProcIndexX, gm.GlobalNzx, gm.NumProcX)
	gm.ZoneYOffset, gm.NzonesY = splitRange(gm.ProcIndexY, gm.GlobalNzy, gm.NumProcY)

	gm.NumZones = gm.NzonesX * gm.NzonesY
	gm.NumPointsX = gm.NzonesX + 1
	gm.NumPointsY = gm.NzonesY + 1

	var perm []int
	if perm, err = MuPermutation(gm.GlobalNzx+1, gm.GlobalNzy+1,
		gm.NumProcX, gm.NumProcY); err != nil {
		return
	}
	gm.GlobalPerm = NewPermutation(perm)
	if perm, err = MuPermutation(gm.NumPointsX, gm.NumPointsY, 1, 1); err != nil {
		return
	}
	gm.LocalPerm = NewPermutation(perm)
	return
}
