// Package duplex implements veil's cryptographic duplex: a Cyclist-style
// (Xoodyak-inspired) construction over the Keccak-p[1600,10] permutation,
// supporting an unkeyed hashing mode (Absorb, SqueezeKey) and a keyed mode
// (Absorb, Encrypt, Decrypt, Squeeze, Ratchet).
//
// This package plays the same structural role as a STROBE-backed protocol
// object (a small, mutable, non-copyable state with one method per
// operation and a distinct domain-separation byte per operation category)
// but builds the duplex itself directly against Keccak-p[1600,10] rather
// than reusing STROBE's own.
//
// Every operation category — absorbing in unkeyed mode, absorbing in keyed
// mode, encrypting/decrypting, squeezing, and ratcheting — is tracked
// lazily: a run of same-category calls (e.g. several Absorb calls in a
// row, or an Encrypt call split across many Write-sized chunks) shares one
// pending, unpadded rate block, permuting only when that block fills.
// Padding (a 0x01 terminator followed by an 0x80 pad at the last rate byte)
// and the category's domain tag are only applied when a *different*
// category is about to begin, which is what makes chunking invariant: a
// message absorbed in one call produces the same final state as the same
// bytes absorbed across many calls.
package duplex

import "github.com/nvzqz/veil/internal/keccak"

const (
	// unkeyedRate is the rate, in bytes, of the unkeyed hashing mode: the
	// 200-byte state less a 256-bit (32-byte) capacity.
	unkeyedRate = keccak.StateSize - 32

	// keyedInputRate is the rate, in bytes, used when absorbing in keyed
	// mode: the 200-byte state less a 32-bit (4-byte) capacity.
	keyedInputRate = keccak.StateSize - 4

	// keyedOutputRate is the rate, in bytes, used when encrypting,
	// decrypting, or squeezing in keyed mode: the 200-byte state less a
	// 192-bit (24-byte) capacity.
	keyedOutputRate = keccak.StateSize - 24

	// RatchetSize is the number of leading state bytes Ratchet zeroes.
	RatchetSize = 16

	// TagSize is the length, in bytes, of an authentication tag produced by
	// Squeeze when used to authenticate a preceding Encrypt/Decrypt run.
	TagSize = 16
)

// Domain-separation tags, one per operation category, applied by XOR to the
// last byte of the relevant rate window whenever that category's pending
// block is finalized (either because it filled, or because a different
// category is starting). When one category gives way to another, the
// incoming category's tag is also XORed into the last byte of the state
// before the finalizing permutation. Values are arbitrary but distinct; this is a
// from-scratch construction, not a wire-compatible reimplementation of any
// published one.
const (
	tagAbsorbHash byte = 0x10
	tagAbsorbKey  byte = 0x20
	tagSqueezeKey byte = 0x30
	tagEncrypt    byte = 0x40
	tagSqueeze    byte = 0x50
	tagRatchet    byte = 0x60
)

const (
	terminator byte = 0x01
	padByte    byte = 0x80
)

// Duplex is the mutable state of a single cryptographic duplex. It is
// exclusively owned by whichever construction created it; the only
// supported way to share state with another Duplex is Clone.
type Duplex struct {
	state [keccak.StateSize]byte
	keyed bool

	openCat  byte
	openRate int
	offset   int
}

// Init creates a new Duplex in unkeyed mode, zeroes its state, and absorbs
// the ASCII domain-separation string ds.
func Init(ds string) *Duplex {
	d := &Duplex{}
	d.Absorb([]byte(ds))

	return d
}

// Absorb injects data into the duplex without producing output. It uses the
// unkeyed hash rate in unkeyed mode and the keyed input rate in keyed mode.
func (d *Duplex) Absorb(data []byte) {
	if d.keyed {
		d.absorbInto(data, tagAbsorbKey, keyedInputRate)
	} else {
		d.absorbInto(data, tagAbsorbHash, unkeyedRate)
	}
}

// Keyed reports whether the duplex has been transitioned into keyed mode
// by a prior call to Cyclist.
func (d *Duplex) Keyed() bool {
	return d.keyed
}

// SqueezeKey extracts n (at most 32) bytes of key material from the duplex.
// Valid only in unkeyed mode.
func (d *Duplex) SqueezeKey(n int) []byte {
	if d.keyed {
		panic("duplex: SqueezeKey called in keyed mode")
	}

	if n > 32 {
		panic("duplex: SqueezeKey output too large")
	}

	d.switchTo(tagSqueezeKey, unkeyedRate)
	d.commit()

	out := make([]byte, n)
	copy(out, d.state[:n])

	return out
}

// Cyclist transitions the duplex into keyed mode by absorbing key under a
// domain tag distinct from unkeyed absorption, and resets the rate to the
// keyed input/output rates.
func (d *Duplex) Cyclist(key []byte) {
	if d.openCat != 0 {
		d.commit()
	}

	d.keyed = true
	d.absorbInto(key, tagAbsorbKey, keyedInputRate)
}

// Encrypt XORs p with the duplex's keystream, appends the result to dst, and
// feeds the ciphertext forward into the duplex state. Valid only in keyed
// mode.
func (d *Duplex) Encrypt(dst, p []byte) []byte {
	if !d.keyed {
		panic("duplex: Encrypt called in unkeyed mode")
	}

	return d.transform(dst, p, tagEncrypt, true)
}

// Decrypt is the inverse of Encrypt: it recovers plaintext from c and feeds
// the ciphertext bytes (not the plaintext) forward into the duplex state,
// so that the state evolves identically on both sides. Valid only in keyed
// mode.
func (d *Duplex) Decrypt(dst, c []byte) []byte {
	if !d.keyed {
		panic("duplex: Decrypt called in unkeyed mode")
	}

	return d.transform(dst, c, tagEncrypt, false)
}

// Squeeze produces n bytes of PRF output, advancing the state the same way
// Encrypt would on n zero bytes, but under a domain tag distinct from
// Encrypt's. That tag is mixed in before the first output block is
// produced, so Squeeze's output differs from Encrypt's keystream. Valid
// only in keyed mode.
func (d *Duplex) Squeeze(n int) []byte {
	if !d.keyed {
		panic("duplex: Squeeze called in unkeyed mode")
	}

	out := make([]byte, 0, n)
	d.switchTo(tagSqueeze, keyedOutputRate)

	for len(out) < n {
		rem := n - len(out)
		avail := keyedOutputRate - d.offset

		chunk := avail
		if chunk > rem {
			chunk = rem
		}

		out = append(out, d.state[d.offset:d.offset+chunk]...)
		d.offset += chunk

		if d.offset == keyedOutputRate {
			d.state[keyedOutputRate-1] ^= tagSqueeze
			keccak.Rounds10(&d.state)
			d.offset = 0
		}
	}

	return out
}

// Ratchet overwrites the first RatchetSize bytes of the state with zero and
// permutes, irreversibly forgetting whatever produced the prior state.
func (d *Duplex) Ratchet() {
	if d.openCat != 0 {
		d.commit()
	}

	for i := 0; i < RatchetSize; i++ {
		d.state[i] = 0
	}

	d.state[keccak.StateSize-1] ^= tagRatchet
	keccak.Rounds10(&d.state)
}

// Clone returns an independent copy of the duplex's state. Used only by
// veil's scalar-hedging helper.
func (d *Duplex) Clone() *Duplex {
	c := *d

	return &c
}

// Zero overwrites the duplex's state with zeros, rendering it unrecoverable.
func (d *Duplex) Zero() {
	for i := range d.state {
		d.state[i] = 0
	}

	d.keyed = false
	d.openCat = 0
	d.openRate = 0
	d.offset = 0
}

// absorbInto is the shared chunking loop for Absorb and Cyclist's keying
// step: it accumulates data into the currently-open rate window, permuting
// (without padding) whenever that window fills.
func (d *Duplex) absorbInto(data []byte, tag byte, rate int) {
	d.switchTo(tag, rate)

	for len(data) > 0 {
		n := rate - d.offset
		if n > len(data) {
			n = len(data)
		}

		for i := 0; i < n; i++ {
			d.state[d.offset+i] ^= data[i]
		}

		d.offset += n
		data = data[n:]

		if d.offset == rate {
			d.state[rate-1] ^= tag
			keccak.Rounds10(&d.state)
			d.offset = 0
		}
	}
}

// transform is the shared chunking loop for Encrypt and Decrypt. When
// encrypt is true, in is plaintext and the duplex state (and output) become
// the ciphertext; when false, in is ciphertext and the output is plaintext,
// but the duplex state still becomes the ciphertext bytes, preserving
// identical state evolution on both ends.
func (d *Duplex) transform(dst, in []byte, tag byte, encrypt bool) []byte {
	d.switchTo(tag, keyedOutputRate)

	out := dst

	for len(in) > 0 {
		n := keyedOutputRate - d.offset
		if n > len(in) {
			n = len(in)
		}

		for i := 0; i < n; i++ {
			o := d.offset + i
			if encrypt {
				c := d.state[o] ^ in[i]
				d.state[o] = c
				out = append(out, c)
			} else {
				p := d.state[o] ^ in[i]
				d.state[o] = in[i]
				out = append(out, p)
			}
		}

		d.offset += n
		in = in[n:]

		if d.offset == keyedOutputRate {
			d.state[keyedOutputRate-1] ^= tag
			keccak.Rounds10(&d.state)
			d.offset = 0
		}
	}

	return out
}

// switchTo finalizes any pending block of a different, currently-open
// category before starting (or continuing) the given one. The incoming
// category's tag is XORed into the last state byte before that
// finalizing permutation, so the new category's first output already
// depends on which category it is.
func (d *Duplex) switchTo(tag byte, rate int) {
	if d.openCat != 0 && (d.openCat != tag || d.openRate != rate) {
		d.state[keccak.StateSize-1] ^= tag
		d.commit()
	}

	d.openCat = tag
	d.openRate = rate
}

// commit finalizes the currently-open category's pending block: it XORs in
// the 0x01 terminator at the current offset and the 0x80 pad and domain tag
// at the last byte of the rate window, then permutes.
func (d *Duplex) commit() {
	if d.openCat == 0 {
		return
	}

	d.state[d.offset] ^= terminator
	d.state[d.openRate-1] ^= padByte
	d.state[d.openRate-1] ^= d.openCat

	keccak.Rounds10(&d.state)

	d.offset = 0
	d.openCat = 0
}
