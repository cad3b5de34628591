// Package pbenc implements veil's memory-hard, passphrase-based encryption
// of a private scalar, via a balloon-hashing key derivation function built
// directly on internal/duplex.
//
// An earlier generation of this package built the identical balloon-hashing
// shape — a counter-keyed hash function mixing a left and right block,
// iterated over a large buffer with pseudo-random dependencies — on top of
// STROBE's AD/PRF calls. This package keeps that shape (hashCounter's
// sequence of "absorb the counter, absorb the left block, absorb the right
// block, extract a new block" survives almost unchanged as HashBlock) but
// runs it over a fresh internal/duplex.Duplex per call rather than a single
// shared STROBE instance, per the derivation's definition: each HashBlock
// invocation gets its own Init("veil.pbenc.iter"), not a continuation of
// some outer protocol.
//
// It should be noted that there is no standard balloon hashing algorithm,
// so this protocol is in the very, very tall grass of cryptography and
// should never be used outside this system.
//
// See https://eprint.iacr.org/2016/027.pdf
package pbenc

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"github.com/nvzqz/veil/internal/duplex"
	"github.com/nvzqz/veil/internal/group"
)

// BlockSize is the size, in bytes, of a single block in the balloon-hashing
// buffer.
const BlockSize = 1024

// SaltSize is the size, in bytes, of the random salt generated for each
// encryption.
const SaltSize = 16

// TagSize is the size, in bytes, of the authentication tag appended to
// every ciphertext.
const TagSize = 16

// delta is the number of pseudo-random block dependencies mixed into every
// block on every time step.
const delta = 3

// Overhead is the number of bytes added to a sealed scalar: the time and
// space parameter bytes, the salt, and the tag.
const Overhead = 1 + 1 + SaltSize + TagSize

// ErrInvalidParameters is returned when the time or space cost byte read
// from a sealed private key is out of range.
var ErrInvalidParameters = errors.New("pbenc: invalid time/space parameters")

// ErrInvalidCiphertext is returned when a sealed private key is too short
// to contain its header and tag, or fails to authenticate.
var ErrInvalidCiphertext = errors.New("pbenc: invalid ciphertext")

// Encrypt seals d's canonical encoding under passphrase, using the given
// time cost (1-255) and space cost (an exponent: 2^space 1024-byte
// blocks), returning time ∥ space ∥ salt ∥ ciphertext ∥ tag.
func Encrypt(passphrase []byte, time, space byte, d *group.Scalar) ([]byte, error) {
	if time == 0 || space == 0 || space > 31 {
		return nil, ErrInvalidParameters
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}

	outer := deriveKey(passphrase, salt, time, space)
	defer outer.Zero()

	out := make([]byte, 0, Overhead+group.ScalarSize)
	out = append(out, time, space)
	out = append(out, salt...)
	out = outer.Encrypt(out, d.Encode())
	out = append(out, outer.Squeeze(TagSize)...)

	return out, nil
}

// Decrypt reverses Encrypt, recovering the scalar sealed in blob under
// passphrase.
func Decrypt(passphrase, blob []byte) (*group.Scalar, error) {
	if len(blob) != Overhead+group.ScalarSize {
		return nil, ErrInvalidCiphertext
	}

	time, space := blob[0], blob[1]
	if time == 0 || space == 0 || space > 31 {
		return nil, ErrInvalidParameters
	}

	salt := blob[2 : 2+SaltSize]
	ciphertext := blob[2+SaltSize : 2+SaltSize+group.ScalarSize]
	tag := blob[2+SaltSize+group.ScalarSize:]

	outer := deriveKey(passphrase, salt, time, space)
	defer outer.Zero()

	plaintext := outer.Decrypt(nil, ciphertext)
	gotTag := outer.Squeeze(TagSize)

	if subtle.ConstantTimeCompare(tag, gotTag) != 1 {
		return nil, ErrInvalidCiphertext
	}

	d, err := group.DecodeScalar(plaintext)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	return d, nil
}

// deriveKey runs the balloon-hashing derivation and returns a duplex keyed
// with the final block, ready for a single Encrypt/Decrypt + Squeeze(tag)
// pair.
func deriveKey(passphrase, salt []byte, time, space byte) *duplex.Duplex {
	numBlocks := 1 << space

	var counter uint64

	blocks := make([][]byte, numBlocks)
	blocks[0] = hashBlock(&counter, BlockSize, passphrase, salt)

	for m := 1; m < numBlocks; m++ {
		blocks[m] = hashBlock(&counter, BlockSize, blocks[m-1])
	}

	idx := make([]byte, 24)

	for t := 0; t < int(time); t++ {
		for m := 0; m < numBlocks; m++ {
			prev := blocks[(m-1+numBlocks)%numBlocks]
			blocks[m] = hashBlock(&counter, BlockSize, prev, blocks[m])

			for i := 0; i < delta; i++ {
				binary.LittleEndian.PutUint64(idx[0:8], uint64(t))
				binary.LittleEndian.PutUint64(idx[8:16], uint64(m))
				binary.LittleEndian.PutUint64(idx[16:24], uint64(i))

				r := hashBlock(&counter, 8, salt, idx)
				other := int(binary.LittleEndian.Uint64(r) % uint64(numBlocks))

				blocks[m] = hashBlock(&counter, BlockSize, blocks[m], blocks[other])
			}
		}
	}

	outer := duplex.Init("veil.pbenc")
	outer.Absorb(blocks[numBlocks-1])
	outer.Cyclist(outer.SqueezeKey(32))

	for _, b := range blocks {
		for i := range b {
			b[i] = 0
		}
	}

	return outer
}

// hashBlock implements HashBlock: a fresh duplex, keyed implicitly by the
// shared counter and whatever inputs are absorbed, producing outlen bytes
// of output. outlen<=32 is served directly from the fresh duplex's unkeyed
// squeeze; larger outputs key the duplex with that squeeze and continue in
// keyed mode, since SqueezeKey itself is bounded to 32 bytes.
func hashBlock(counter *uint64, outlen int, inputs ...[]byte) []byte {
	d := duplex.Init("veil.pbenc.iter")

	var cbuf [8]byte
	binary.LittleEndian.PutUint64(cbuf[:], *counter)
	*counter++

	d.Absorb(cbuf[:])

	for _, in := range inputs {
		d.Absorb(in)
	}

	if outlen <= 32 {
		return d.SqueezeKey(outlen)
	}

	key := d.SqueezeKey(32)
	d.Cyclist(key)

	return d.Squeeze(outlen)
}
