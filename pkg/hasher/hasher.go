// Package hasher provides the raw 64-bit hash functions used by the
// hash sets. The sets only ever see a Func; how a key type is turned
// into a hash is decided here.
package hasher

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Func is a type definition for what a hash function should look like
type Func[K any] func(key K) uint64

// Comparable returns a Func for any comparable key type. Each call uses
// a freshly generated seed, so two Funcs from separate calls will not
// agree on hash values.
func Comparable[K comparable]() Func[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}

// String hashes s with xxhash
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Bytes hashes b with xxhash
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Uint64 runs x through the murmur3 64-bit finalizer. Unlike Comparable
// the result is stable across runs, which keeps integer workloads
// reproducible.
func Uint64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// Integer is Uint64 for any integer key type
func Integer[K constraints.Integer](key K) uint64 {
	return Uint64(uint64(key))
}
