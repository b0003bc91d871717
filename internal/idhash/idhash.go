// Package idhash derives stable pseudo-random numbers from record identities.
package idhash

import "unicode/utf16"

// Hash folds s with h = h*31 + c over its UTF-16 code units using wrapping
// 32-bit signed arithmetic and returns the magnitude of the result. The
// magnitude of math.MinInt32 is 2^31, which is why the result is unsigned.
// Hash("") is 0.
func Hash(s string) uint32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}

// Mod returns Hash(s) % n, treating n <= 0 as 1.
func Mod(s string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(Hash(s) % uint32(n))
}
