package veil

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	pk, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("ok there bud")

	sig, err := pk.Sign(bytes.NewReader(message))
	if err != nil {
		t.Fatal(err)
	}

	if err := pk.PublicKey().Verify(bytes.NewReader(message), sig); err != nil {
		t.Fatal(err)
	}
}

func TestEncryptAndDecrypt(t *testing.T) {
	t.Parallel()

	a, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("one two three four I declare a thumb war")
	enc := bytes.NewBuffer(nil)
	dec := bytes.NewBuffer(nil)
	publicKeys := []*PublicKey{a.PublicKey(), b.PublicKey()}

	eb, err := a.Encrypt(enc, bytes.NewReader(message), publicKeys, 0, 1234)
	if err != nil {
		t.Fatal(err)
	}

	db, err := b.Decrypt(dec, bytes.NewReader(enc.Bytes()), a.PublicKey())
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "plaintext", message, dec.Bytes())
	assert.Equal(t, "encrypted bytes", int64(enc.Len()), eb)
	assert.Equal(t, "decrypted bytes", int64(dec.Len()), db)
}

func TestFuzzEncryptAndDecrypt(t *testing.T) {
	t.Parallel()

	a, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	b := make([]byte, 1024*1024)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}

	_, err = a.Decrypt(io.Discard, bytes.NewReader(b), a.PublicKey())
	if err == nil {
		t.Fatal("shouldn't have decrypted")
	}
}
