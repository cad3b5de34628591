// Package hedge implements veil's scalar-hedging construction: deriving an
// ephemeral scalar or byte string from both a long-term secret and fresh
// system entropy, so a catastrophic failure of the CSPRNG alone cannot
// force the reuse of an ephemeral value.
//
// This is the same technique the teacher's hpke.Encrypt and schnorr.Sign
// each inline by hand (clone the live protocol, key the clone with random
// bytes and the signer's private scalar, then pull PRF output from the
// clone and discard it): "In deriving the ephemeral scalar from a cloned
// context, veil.hpke uses Aranha et al.'s hedging technique to mitigate
// against both catastrophic randomness failures and differential fault
// attacks against purely deterministic PKE schemes." This package gives
// that pattern one home so schnorr, sres, and mres all call it the same
// way instead of repeating the clone/key/squeeze dance inline.
package hedge

import (
	"crypto/rand"

	"github.com/nvzqz/veil/internal/duplex"
	"github.com/nvzqz/veil/internal/group"
)

// randomSeedSize is the number of system-CSPRNG bytes mixed into every
// hedge, per the construction's "Absorb(64 random bytes)" step.
const randomSeedSize = 64

// Scalar clones d, absorbs secret and fresh random bytes into the clone,
// squeezes n bytes of output, reduces them mod q, and returns the
// resulting scalar. d is left unmodified. The clone is zeroed before
// Scalar returns.
func Scalar(d *duplex.Duplex, secret []byte, n int) (*group.Scalar, error) {
	out, err := squeeze(d, secret, n)
	if err != nil {
		return nil, err
	}

	return group.ReduceWide(out), nil
}

// Bytes is Scalar without the final reduction: it returns the raw squeeze
// output of a hedged clone, for uses (DEKs, nonces) that want hedged but
// otherwise unstructured bytes rather than a scalar.
func Bytes(d *duplex.Duplex, secret []byte, n int) ([]byte, error) {
	return squeeze(d, secret, n)
}

func squeeze(d *duplex.Duplex, secret []byte, n int) ([]byte, error) {
	clone := d.Clone()
	defer clone.Zero()

	clone.Absorb(secret)

	var r [randomSeedSize]byte
	if _, err := rand.Read(r[:]); err != nil {
		return nil, err
	}

	clone.Absorb(r[:])

	// Squeeze is keyed-mode-only. d may already be keyed (schnorr and sres
	// hedge off a duplex that's been Cyclist-ed already) or still unkeyed
	// (mres hedges before its first Cyclist call); an unkeyed clone has to
	// key itself off its own absorbed state before it can produce output.
	if !clone.Keyed() {
		key := clone.SqueezeKey(32)
		clone.Cyclist(key)
	}

	return clone.Squeeze(n), nil
}
