// Package veil implements the Veil duplex-based cryptosystem.
//
// Veil is an experimental cryptosystem for sending and receiving
// confidential, authentic multi-recipient messages which are
// indistinguishable from random noise by an attacker. Veil messages
// contain no metadata or format details which are not encrypted. Messages
// can be padded with random bytes to disguise their true length, and fake
// recipients can be added to disguise the true number of recipients from
// other recipients.
//
// You should not use this.
package veil

import (
	"errors"

	"github.com/nvzqz/veil/internal/mres"
)

var (
	// ErrInvalidCiphertext is returned when a ciphertext cannot be decrypted, either due to an
	// incorrect key or tampering.
	ErrInvalidCiphertext = mres.ErrInvalidCiphertext

	// ErrInvalidSignature is returned when a signature, public key, and message do not match.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidParameters is returned when Encrypt is called with a negative or implausibly
	// large fakes or padding value.
	ErrInvalidParameters = mres.ErrInvalidParameters
)
