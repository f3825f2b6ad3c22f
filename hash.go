package drawpool

import "math"

// Content hashing for framed-pool change detection uses an incremental
// FNV-1a fold: deterministic for identical input sequences and sensitive
// to reordering. False positives (an unnecessary re-render) are
// acceptable; false negatives (a stale cache) are not.
const (
	hashSeed  uint64 = 14695981039346656037 // FNV-1a 64-bit offset basis
	hashPrime uint64 = 1099511628211        // FNV-1a 64-bit prime
)

// hashCombine folds v into h, order-sensitively.
func hashCombine(h, v uint64) uint64 {
	h ^= v
	h *= hashPrime
	return h
}

// hashFloat folds the bit pattern of f into h.
func hashFloat(h uint64, f float64) uint64 {
	return hashCombine(h, math.Float64bits(f))
}

// hashRect folds all four rectangle components into h.
func hashRect(h uint64, r Rect) uint64 {
	h = hashFloat(h, r.X)
	h = hashFloat(h, r.Y)
	h = hashFloat(h, r.W)
	return hashFloat(h, r.H)
}

// hashPoint folds both point components into h.
func hashPoint(h uint64, p Point) uint64 {
	h = hashFloat(h, p.X)
	return hashFloat(h, p.Y)
}

// hashString folds a string into h byte by byte.
func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= hashPrime
	}
	return h
}
