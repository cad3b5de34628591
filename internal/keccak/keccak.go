// Package keccak implements the Keccak-p[1600,n] family of permutations on a
// 200-byte (1600-bit) state, as specified by FIPS 202's step mappings (θ, ρ,
// π, χ, ι).
//
// veil.duplex uses Keccak-p[1600,10] — the ten-round member of the family —
// as the permutation underlying its Cyclist duplex construction. No example
// third-party Go package exposes a reduced-round Keccak-p permutation (the
// standard library's and the wider ecosystem's SHA-3 packages hardcode the
// full 24-round Keccak-f and don't export the permutation step itself), so
// this package implements the permutation directly from its specification.
package keccak

import "encoding/binary"

// StateSize is the width of the Keccak-p state in bytes (1600 bits).
const StateSize = 200

// Rounds10 applies the ten-round Keccak-p[1600,10] permutation to state,
// which must be exactly StateSize bytes.
func Rounds10(state *[StateSize]byte) {
	permute(state, 10)
}

// permute applies the last nr rounds of the 24-round Keccak-f[1600]
// permutation to state, in place. Using the *last* nr rounds (rather than the
// first) is what FIPS 202 specifies for Keccak-p[1600,nr] with nr < 24.
func permute(state *[StateSize]byte, nr int) {
	var a [25]uint64

	for i := 0; i < 25; i++ {
		a[i] = binary.LittleEndian.Uint64(state[i*8:])
	}

	start := 24 - nr
	for round := start; round < 24; round++ {
		theta(&a)
		rhoPi(&a)
		chi(&a)
		iota(&a, round)
	}

	for i := 0; i < 25; i++ {
		binary.LittleEndian.PutUint64(state[i*8:], a[i])
	}
}

func theta(a *[25]uint64) {
	var c [5]uint64

	for x := 0; x < 5; x++ {
		c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
	}

	var d [5]uint64
	for x := 0; x < 5; x++ {
		d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
	}

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x+5*y] ^= d[x]
		}
	}
}

// rotationOffsets[x+5*y] gives the rho rotation for lane (x, y).
var rotationOffsets = [25]uint{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

func rhoPi(a *[25]uint64) {
	var b [25]uint64

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			// pi: (x, y) -> (y, 2x+3y mod 5)
			nx := y
			ny := (2*x + 3*y) % 5
			b[nx+5*ny] = rotl64(a[x+5*y], rotationOffsets[x+5*y])
		}
	}

	*a = b
}

func chi(a *[25]uint64) {
	var b [25]uint64

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			b[x+5*y] = a[x+5*y] ^ ((^a[(x+1)%5+5*y]) & a[(x+2)%5+5*y])
		}
	}

	*a = b
}

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

func iota(a *[25]uint64, round int) {
	a[0] ^= roundConstants[round]
}

func rotl64(x uint64, n uint) uint64 {
	if n == 0 {
		return x
	}

	return (x << n) | (x >> (64 - n))
}
