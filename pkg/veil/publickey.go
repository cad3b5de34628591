package veil

import (
	"encoding"
	"fmt"
	"io"

	"github.com/nvzqz/veil/internal"
	"github.com/nvzqz/veil/internal/group"
	"github.com/nvzqz/veil/internal/schnorr"
)

// PublicKey is a key that's used to verify and encrypt messages.
//
// It can be marshalled and unmarshalled as a base58 string for human consumption.
type PublicKey struct {
	q *group.Point
}

// Verify returns nil if the given signature was created by the owner of the given public
// key for the contents of src, otherwise ErrInvalidSignature.
func (pk *PublicKey) Verify(src io.Reader, sig *Signature) error {
	verifier := schnorr.NewVerifier(pk.q)
	if _, err := io.Copy(verifier, src); err != nil {
		return err
	}

	if !verifier.Verify(sig.b) {
		return ErrInvalidSignature
	}

	return nil
}

// String returns the public key as base58 text.
func (pk *PublicKey) String() string {
	text, err := pk.MarshalText()
	if err != nil {
		panic(err)
	}

	return string(text)
}

// MarshalBinary encodes the public key into a 32-byte slice.
func (pk *PublicKey) MarshalBinary() (data []byte, err error) {
	return pk.q.Encode(), nil
}

// UnmarshalBinary decodes the public key from a 32-byte slice.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	q, err := group.DecodePoint(data)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}

	pk.q = q

	return nil
}

// MarshalText encodes the public key into base58 text and returns the result.
func (pk *PublicKey) MarshalText() (text []byte, err error) {
	return internal.ASCIIEncode(pk.q.Encode()), nil
}

// UnmarshalText decodes the results of MarshalText and updates the receiver to contain the decoded
// public key.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	data, err := internal.ASCIIDecode(text)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}

	return pk.UnmarshalBinary(data)
}

var (
	_ encoding.BinaryMarshaler   = &PublicKey{}
	_ encoding.BinaryUnmarshaler = &PublicKey{}
	_ encoding.TextMarshaler     = &PublicKey{}
	_ encoding.TextUnmarshaler   = &PublicKey{}
	_ fmt.Stringer               = &PublicKey{}
)
