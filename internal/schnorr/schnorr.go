// Package schnorr implements veil's key-private Schnorr signatures: a
// Fiat-Shamir/EdDSA-style signature in which both the commitment and the
// response scalar are themselves encrypted under the duplex, so a
// signature is indistinguishable from random noise without the signer's
// public key and the signed message.
//
// An earlier generation of this package built the same
// INIT/AD/SEND_CLR/KEY/PRF shape on STROBE, with the challenge and
// response returned in the clear as two full scalars. This generation
// keeps the Signer/Verifier io.Writer shape (so a message can be streamed
// in rather than buffered whole) but follows the revised construction:
// the commitment point and response scalar are encrypted rather than
// sent in the clear, and the challenge is a short (128-bit) value
// squeezed from the duplex and zero-extended into a full scalar, rather
// than a full-width PRF output.
package schnorr

import (
	"io"

	"github.com/nvzqz/veil/internal/duplex"
	"github.com/nvzqz/veil/internal/group"
	"github.com/nvzqz/veil/internal/hedge"
)

// SignatureSize is the length of a signature in bytes: an encrypted
// commitment point and an encrypted response scalar.
const SignatureSize = group.PointSize + group.ScalarSize

// shortChallengeSize is the length, in bytes, of the short challenge
// squeezed from the duplex before being zero-extended into a full scalar.
const shortChallengeSize = 16

// Signer is an io.Writer which absorbs written data into a duplex in
// preparation for signing.
type Signer struct {
	d  *duplex.Duplex
	dS *group.Scalar
}

// NewSigner returns a Signer for the given key pair.
func NewSigner(dS *group.Scalar, qS *group.Point) *Signer {
	d := duplex.Init("veil.schnorr")
	d.Absorb(qS.Encode())

	return &Signer{d: d, dS: dS}
}

// Write absorbs p as part of the message being signed.
func (sn *Signer) Write(p []byte) (n int, err error) {
	sn.d.Absorb(p)
	return len(p), nil
}

// Sign returns a hedged signature of the previously written message: its
// commitment scalar is derived from both the private key and fresh random
// bytes, so two signatures of the same message differ.
func (sn *Signer) Sign() ([]byte, error) {
	defer sn.d.Zero()

	sn.d.Cyclist(sn.d.SqueezeKey(32))

	k, err := hedge.Scalar(sn.d, sn.dS.Encode(), 32)
	if err != nil {
		return nil, err
	}

	commitment := group.BaseMult(k)

	sig := sn.d.Encrypt(nil, commitment.Encode())

	r := group.DecodeShortScalar(sn.d.Squeeze(shortChallengeSize))

	s := sn.dS.Multiply(r).Add(k)

	sig = sn.d.Encrypt(sig, s.Encode())

	return sig, nil
}

// Verifier is an io.Writer which absorbs written data into a duplex in
// preparation for verification.
type Verifier struct {
	d *duplex.Duplex
	q *group.Point
}

// NewVerifier returns a Verifier for the given signer's public key.
func NewVerifier(q *group.Point) *Verifier {
	d := duplex.Init("veil.schnorr")
	d.Absorb(q.Encode())

	return &Verifier{d: d, q: q}
}

// Write absorbs p as part of the message being verified.
func (vr *Verifier) Write(p []byte) (n int, err error) {
	vr.d.Absorb(p)
	return len(p), nil
}

// Verify reports whether sig is a valid signature, by the verifier's
// public key, of the previously written message.
func (vr *Verifier) Verify(sig []byte) bool {
	defer vr.d.Zero()

	if len(sig) != SignatureSize {
		return false
	}

	vr.d.Cyclist(vr.d.SqueezeKey(32))

	commitmentBytes := vr.d.Decrypt(nil, sig[:group.PointSize])

	commitment, err := group.DecodePoint(commitmentBytes)
	if err != nil {
		return false
	}

	r := group.DecodeShortScalar(vr.d.Squeeze(shortChallengeSize))

	sBytes := vr.d.Decrypt(nil, sig[group.PointSize:])

	s, err := group.DecodeScalar(sBytes)
	if err != nil {
		return false
	}

	recomputed := group.BaseMult(s).Subtract(vr.q.Mult(r))

	return commitment.Equal(recomputed)
}

var (
	_ io.Writer = &Signer{}
	_ io.Writer = &Verifier{}
)
