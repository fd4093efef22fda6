package openaddr

import "math"

const (
	DefaultLoadFactor = 0.75
	DefaultSetSize    = 16
	defaultShardCount = 16
)

// alignSlotCount aligns slots to ensure all sizes are powers of two
func alignSlotCount(size uint) uint64 {
	count := uint(DefaultSetSize)
	for count < size {
		count *= 2
	}
	return uint64(count)
}

// growThreshold returns the live count at which a table of n slots must
// grow before taking another key. For an integer size, size >= ceil(n*lf)
// is the same as size >= n*lf.
func growThreshold(n uint64, lf float64) int {
	return int(math.Ceil(float64(n) * lf))
}

// mix folds the high bits of a raw hash down into the low bits, which are
// the only ones a small table indexes with
func mix(h uint64) uint64 {
	h ^= h >> 32
	h ^= (h >> 20) ^ (h >> 12)
	return h ^ (h >> 7) ^ (h >> 4)
}
