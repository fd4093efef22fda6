package util

import (
	"math/rand"
	"strings"
)

const (
	letterBytes   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

// RandString returns a random string of n letters drawn from rng
func RandString(rng *rand.Rand, n int) string {
	sb := strings.Builder{}
	sb.Grow(n)
	// A rng.Int63() generates 63 random bits, enough for letterIdxMax characters!
	for i, cache, remain := n-1, rng.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rng.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			sb.WriteByte(letterBytes[idx])
			i--
		}
		cache >>= letterIdxBits
		remain--
	}
	return sb.String()
}

// RandStrings returns n random strings of the given length
func RandStrings(rng *rand.Rand, n, length int) []string {
	ss := make([]string, n)
	for i := range ss {
		ss[i] = RandString(rng, length)
	}
	return ss
}

// RandInts returns n random ints
func RandInts(rng *rand.Rand, n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = rng.Int()
	}
	return xs
}
