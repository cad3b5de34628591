package veil

import (
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestEncryptDecryptPrivateKey_RoundTrip(t *testing.T) {
	t.Parallel()

	pk, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	sealed, err := EncryptPrivateKey(pk, []byte("a good passphrase"), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	opened, err := DecryptPrivateKey(sealed, []byte("a good passphrase"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "public key", pk.PublicKey().String(), opened.PublicKey().String())
}

func TestDecryptPrivateKey_WrongPassphrase(t *testing.T) {
	t.Parallel()

	pk, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	sealed, err := EncryptPrivateKey(pk, []byte("a good passphrase"), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := DecryptPrivateKey(sealed, []byte("a bad passphrase")); err != ErrInvalidCiphertext {
		t.Fatalf("got %v, want %v", err, ErrInvalidCiphertext)
	}
}
