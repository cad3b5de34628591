// Package internal contains helper functions shared by veil's public API
// that don't belong to any one protocol package.
package internal

import (
	"crypto/rand"
	"math/big"

	"github.com/mr-tron/base58"
)

// IntN returns a cryptographically random integer selected uniformly from
// [0,max).
func IntN(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return int(n.Int64())
}

// ASCIIEncode encodes data as base58 text, for public keys and signatures.
func ASCIIEncode(data []byte) []byte {
	return []byte(base58.Encode(data))
}

// ASCIIDecode decodes the result of ASCIIEncode.
func ASCIIDecode(text []byte) ([]byte, error) {
	return base58.Decode(string(text))
}
