// Package seed derives independent sub-seeds from a single base seed and
// constructs the deterministic random sources used by every stochastic part
// of a render. Derivation is a pure mixing function, so the same base seed
// and label path always yield the same stream on every platform.
package seed

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
)

// splitMixGamma is the 64-bit golden-ratio increment used to decorrelate the
// two PCG state words derived from one 32-bit seed.
const splitMixGamma = 0x9E3779B97F4A7C15

// Derive mixes a base seed with a component label into a new 32-bit seed.
// Distinct labels produce decorrelated seeds; the same label always produces
// the same seed.
func Derive(base uint32, label string) uint32 {
	h := fnv.New32a()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], base)
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(label))
	return h.Sum32()
}

// DeriveIndexed derives a sub-seed for the i-th instance of a component,
// e.g. one per layer in declaration order.
func DeriveIndexed(base uint32, label string, index int) uint32 {
	return Derive(base, label+"/"+strconv.Itoa(index))
}

// NewRand returns a deterministic random source for the given derived seed.
// PCG is seeded from the 32-bit seed expanded with splitmix-style mixing so
// that nearby seeds do not share state prefixes.
func NewRand(s uint32) *rand.Rand {
	lo := uint64(s)
	hi := (lo + splitMixGamma) * splitMixGamma
	return rand.New(rand.NewPCG(lo*splitMixGamma, hi))
}

// Uniform returns the next sample in [-1, 1) from the source.
func Uniform(r *rand.Rand) float64 {
	return 2*r.Float64() - 1
}
