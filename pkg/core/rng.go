package core

import "math/rand/v2"

// splitMix64 is the SplitMix64 finalizer. It spreads nearby inputs (adjacent
// pixels, consecutive seeds) over the whole 64-bit range.
func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// PixelSeed derives the seed of a pixel's random stream from the global seed
// and the pixel coordinates.
func PixelSeed(seed uint64, x, y int) uint64 {
	h := splitMix64(seed)
	h = splitMix64(h ^ uint64(uint32(x)))
	h = splitMix64(h ^ (uint64(uint32(y)) << 32))
	return h
}

// NewPixelRand returns the random generator owned by pixel (x, y)
func NewPixelRand(seed uint64, x, y int) *rand.Rand {
	s := PixelSeed(seed, x, y)
	return rand.New(rand.NewPCG(s, splitMix64(s)))
}

// NewPixelSampler returns a sampler over the pixel's own random stream.
// Two calls with the same arguments replay the same sequence.
func NewPixelSampler(seed uint64, x, y int) *RandomSampler {
	return NewRandomSampler(NewPixelRand(seed, x, y))
}

// NewSeededSampler returns a sampler for a single seed, used outside the
// per-pixel render loop (tests, tools)
func NewSeededSampler(seed uint64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewPCG(seed, splitMix64(seed))))
}
