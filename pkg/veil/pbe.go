package veil

import (
	"github.com/nvzqz/veil/internal/group"
	"github.com/nvzqz/veil/internal/pbenc"
)

// EncryptPrivateKey encrypts pk with the given passphrase, using balloon hashing with the given
// time and space parameters to derive the encryption key. Returns the encrypted private key.
func EncryptPrivateKey(pk *PrivateKey, passphrase []byte, time, space byte) ([]byte, error) {
	return pbenc.Encrypt(passphrase, time, space, pk.d)
}

// DecryptPrivateKey decrypts a private key previously encrypted with EncryptPrivateKey, given the
// same passphrase. Returns ErrInvalidCiphertext if the passphrase is wrong or the ciphertext has
// been tampered with.
func DecryptPrivateKey(sealed, passphrase []byte) (*PrivateKey, error) {
	d, err := pbenc.Decrypt(passphrase, sealed)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	return &PrivateKey{d: d, q: group.BaseMult(d)}, nil
}
