package imbens

import "math/rand"

// drawSeedPositions draws numSeeds positions in [0, classSize) with
// replacement. The same position can come up more than once; duplicate seeds
// are kept, not collapsed.
func drawSeedPositions(rng *rand.Rand, classSize, numSeeds int) []int {
	positions := make([]int, numSeeds)
	for i := range positions {
		positions[i] = rng.Intn(classSize)
	}
	return positions
}
