package mesh

import "fmt"

// Permutation is a bijection on raster-ordered grid point indices. Perm maps
// a raster index to its storage index, Deperm is the inverse.
type Permutation struct {
	Perm, Deperm []int
}

func NewPermutation(perm []int) (p Permutation) {
	p.Perm = perm
	p.Deperm = make([]int, len(perm))
	for i, v := range perm {
		p.Deperm[v] = i
	}
	return
}

func (p Permutation) Len() int { return len(p.Perm) }

// checkBlockWidths enforces the shared precondition of both orderings: each
// axis is either a single block or splits into blocks of equal width with the
// block edge points shared.
func checkBlockWidths(numPtsX, numPtsY, numBlocksX, numBlocksY, widthX, widthY int) (err error) {
	if widthX*numBlocksX+1 != numPtsX && numBlocksX != 1 {
		err = fmt.Errorf("block count %d does not divide point grid width %d",
			numBlocksX, numPtsX)
		return
	}
	if widthY*numBlocksY+1 != numPtsY && numBlocksY != 1 {
		err = fmt.Errorf("block count %d does not divide point grid height %d",
			numBlocksY, numPtsY)
		return
	}
	return
}

// SnailPermutation orders an (numPtsX x numPtsY) point grid by spiraling
// within each of numBlocksX x numBlocksY near-equal blocks, direction order
// +x, +y, -x, -y, jumping to the next block in row-major block order when the
// spiral is pinned on all four sides. Block boundary points are shared
// between adjacent blocks.
func SnailPermutation(numPtsX, numPtsY, numBlocksX, numBlocksY int) (grid []int, err error) {
	var (
		widthX = numPtsX / numBlocksX
		widthY = numPtsY / numBlocksY
	)
	if err = checkBlockWidths(numPtsX, numPtsY, numBlocksX, numBlocksY,
		widthX, widthY); err != nil {
		return
	}

	grid = make([]int, numPtsX*numPtsY)

	// Seed the grid with the negative block number so the walk can tell an
	// unvisited cell of its own block from everything else
	for y := 0; y < numPtsY; y++ {
		for x := 0; x < numPtsX; x++ {
			grid[y*numPtsX+x] = -(max((y-1)/widthY, 0)*numBlocksX +
				max((x-1)/widthX, 0) + 1)
		}
	}

	var (
		locX, locY int // location on grid
		dir        int // index into direction vectors
		dirListX   = [4]int{1, 0, -1, 0}
		dirListY   = [4]int{0, 1, 0, -1}
	)
	for iter, block := 0, 0; iter < numPtsX*numPtsY; iter++ {
		grid[locY*numPtsX+locX] = iter
		dirIter := 0 // how many directions have we tried?
		// The next location must be inside the grid, inside the current
		// block, and not yet visited
		for (locX+dirListX[dir] < 0 ||
			locX+dirListX[dir] >= numPtsX ||
			locY+dirListY[dir] < 0 ||
			locY+dirListY[dir] >= numPtsY ||
			grid[(locY+dirListY[dir])*numPtsX+locX+dirListX[dir]] != -block-1) &&
			dirIter < 4 {
			dirIter++
			dir = (dir + 1) % 4
		}
		if dirIter < 3 { // normal continuation: spiral within block
			locX += dirListX[dir]
			locY += dirListY[dir]
		} else { // jump to next block
			block++
			dir = 0
			locX = (block % numBlocksX) * widthX
			if block%numBlocksX > 0 {
				locX++
			}
			locY = (block / numBlocksX) * widthY
			if block/numBlocksX > 0 {
				locY++
			}
		}
	}
	return
}

// MuPermutation fills each block's edges first, in a fixed order, then the
// interior: left edge (leftmost blocks only), top edge (topmost blocks only),
// right edge, bottom edge, middle, blocks visited in row-major order. Point
// (0,0) is always index 0. Outer boundary points land at predictable low
// indices, which is what the halo enumerators want.
func MuPermutation(numPtsX, numPtsY, numBlocksX, numBlocksY int) (perm []int, err error) {
	var (
		widthX = (numPtsX - 1) / numBlocksX
		widthY = (numPtsY - 1) / numBlocksY
	)
	if err = checkBlockWidths(numPtsX, numPtsY, numBlocksX, numBlocksY,
		widthX, widthY); err != nil {
		return
	}

	perm = make([]int, numPtsX*numPtsY)
	linearize := func(x, y int) int {
		return y*numPtsX + x
	}

	cnt := 0
	perm[0] = cnt
	cnt++
	for blockY := 0; blockY < numBlocksY; blockY++ {
		for blockX := 0; blockX < numBlocksX; blockX++ {
			// Add the left edge
			if blockX == 0 {
				for dy := 1; dy < widthY+1; dy++ {
					perm[linearize(0, widthY*blockY+dy)] = cnt
					cnt++
				}
			}
			// Across the top
			if blockY == 0 {
				for dx := 0; dx < widthX; dx++ {
					perm[linearize(blockX*widthX+1+dx, widthY*blockY)] = cnt
					cnt++
				}
			}
			// Add the right edge
			for dy := 0; dy < widthY; dy++ {
				perm[linearize(widthX*(blockX+1), widthY*blockY+1+dy)] = cnt
				cnt++
			}
			// Add the bottom edge
			for dx := 0; dx < widthX-1; dx++ {
				perm[linearize(widthX*blockX+1+dx, widthY*(blockY+1))] = cnt
				cnt++
			}
			// Fill the middle
			for dy := 1; dy < widthY; dy++ {
				for dx := 1; dx < widthX; dx++ {
					perm[linearize(widthX*blockX+dx, widthY*blockY+dy)] = cnt
					cnt++
				}
			}
		}
	}
	if cnt != numPtsX*numPtsY {
		panic(fmt.Errorf("mu ordering assigned %d of %d points", cnt,
			numPtsX*numPtsY))
	}
	return
}
