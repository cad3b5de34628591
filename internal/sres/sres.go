// Package sres implements veil's single-receiver signcryption of a header:
// a fixed-size payload (the message's data encryption key, receiver
// count, and padding length) is encrypted for exactly one receiver and
// bound with a designated-verifier Schnorr-style proof that only that
// receiver can check.
//
// This plays the same role the teacher's hpke package plays — an
// authenticated hybrid encryption of a short payload, built from a
// static+ephemeral ECDH exchange keying a duplex — but adds the
// designated-verifier proof (the commitment and proof point at the end of
// EncryptHeader) that hpke.Encrypt/Decrypt don't have: instead of
// returning plain PRF output for a DEM, the sender proves, in a way that
// only the holder of the receiver's private key can check, that they hold
// the private key matching the sender public key the header claims to
// come from. The ECDH/duplex-keying shape
// (static secret keys the protocol, an ephemeral key is derived by
// hedging, and the ephemeral shared secret keys the next phase) is
// adapted directly from hpke.Encrypt/Decrypt.
package sres

import (
	"github.com/nvzqz/veil/internal/duplex"
	"github.com/nvzqz/veil/internal/group"
	"github.com/nvzqz/veil/internal/hedge"
)

// HeaderPayloadSize is the length, in bytes, of the header payload H: a
// 32-byte data encryption key, a 4-byte little-endian receiver count, and
// a 4-byte little-endian padding length.
const HeaderPayloadSize = 32 + 4 + 4

// HeaderLen is the fixed length, in bytes, of an encrypted header: an
// encrypted ephemeral public key (C0), the encrypted payload (C1), an
// encrypted commitment point (S0), and an encrypted proof point (S1).
const HeaderLen = group.PointSize + HeaderPayloadSize + group.PointSize + group.PointSize

// EncryptHeader signcrypts h (which must be HeaderPayloadSize bytes) for
// qR, using the sender's static key pair (dS, qS), a freshly-hedged
// ephemeral signing scalar dE, and a per-header nonce.
func EncryptHeader(dS *group.Scalar, qS *group.Point, dE *group.Scalar, qR *group.Point, nonce, h []byte) ([]byte, error) {
	d := duplex.Init("veil.sres")
	defer d.Zero()

	d.Absorb(qS.Encode())
	d.Absorb(qR.Encode())
	d.Absorb(nonce)

	zzS := qR.Mult(dS)
	d.Absorb(zzS.Encode())

	d.Cyclist(d.SqueezeKey(32))

	qE := group.BaseMult(dE)
	out := d.Encrypt(nil, qE.Encode())

	zzE := qR.Mult(dE)
	d.Absorb(zzE.Encode())

	out = d.Encrypt(out, h)

	k, err := hedge.Scalar(d, dS.Encode(), 32)
	if err != nil {
		return nil, err
	}

	commitment := group.BaseMult(k)
	out = d.Encrypt(out, commitment.Encode())

	r := group.ReduceWide(d.Squeeze(32))

	s := dS.Multiply(r).Add(k)
	x := qR.Mult(s)

	out = d.Encrypt(out, x.Encode())

	return out, nil
}

// DecryptHeader attempts to open a header addressed to the receiver's key
// pair (dR, qR implied) from the claimed sender qS. It always performs
// the full sequence of duplex operations regardless of where a decoding
// or proof failure occurs, so that a caller scanning many headers (as
// mres does) doesn't leak which step failed through timing. On success it
// returns the ephemeral signing key qE and the header payload; on any
// failure it returns ok=false and the other values must be ignored.
func DecryptHeader(dR *group.Scalar, qS *group.Point, nonce, blob []byte) (qE *group.Point, h []byte, ok bool) {
	if len(blob) != HeaderLen {
		return nil, nil, false
	}

	qR := group.BaseMult(dR)

	d := duplex.Init("veil.sres")
	defer d.Zero()

	d.Absorb(qS.Encode())
	d.Absorb(qR.Encode())
	d.Absorb(nonce)

	zzS := qS.Mult(dR)
	d.Absorb(zzS.Encode())

	d.Cyclist(d.SqueezeKey(32))

	qEBytes := d.Decrypt(nil, blob[:group.PointSize])

	decodedQE, qEErr := group.DecodePoint(qEBytes)
	validQE := qEErr == nil

	useQE := decodedQE
	if !validQE {
		useQE = group.NewPoint()
	}

	zzE := useQE.Mult(dR)
	d.Absorb(zzE.Encode())

	payload := d.Decrypt(nil, blob[group.PointSize:group.PointSize+HeaderPayloadSize])

	commitmentBytes := d.Decrypt(nil, blob[group.PointSize+HeaderPayloadSize:group.PointSize+HeaderPayloadSize+group.PointSize])

	decodedCommitment, commitErr := group.DecodePoint(commitmentBytes)
	validCommitment := commitErr == nil

	useCommitment := decodedCommitment
	if !validCommitment {
		useCommitment = group.NewPoint()
	}

	r := group.ReduceWide(d.Squeeze(32))

	xBytes := d.Decrypt(nil, blob[group.PointSize+HeaderPayloadSize+group.PointSize:])

	decodedX, xErr := group.DecodePoint(xBytes)
	validX := xErr == nil

	wantX := useCommitment.Add(qS.Mult(r)).Mult(dR)

	proofOK := validX && wantX.Equal(decodedX)
	ok = validQE && proofOK

	if !ok {
		return nil, nil, false
	}

	return decodedQE, payload, true
}
