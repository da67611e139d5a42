package mhash

import "math/bits"

// Bucket maps digest onto [0, n) with a multiply-shift range reduction.
// It reads the high bits of the digest, so it needs no power-of-two size.
// Bucket returns 0 when n is 0.
func Bucket(digest, n uint64) uint64 {
	hi, _ := bits.Mul64(digest, n)
	return hi
}

// Mask maps digest onto [0, size) by keeping its low bits. size must be a
// power of two; for any other size use Bucket.
func Mask(digest, size uint64) uint64 {
	return digest & (size - 1)
}
