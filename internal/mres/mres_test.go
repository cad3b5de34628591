package mres

import (
	"bytes"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/nvzqz/veil/internal/group"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	dA, qA := keyPair(t)
	dB, qB := keyPair(t)

	plaintext := []byte("a message for more than one receiver")

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader(plaintext), dS, qS, []*group.Point{qA, qB}, 3, 32); err != nil {
		t.Fatal(err)
	}

	for _, dR := range []*group.Scalar{dA, dB} {
		qR := group.BaseMult(dR)

		var plaintextOut bytes.Buffer

		if _, err := DecryptMessage(&plaintextOut, bytes.NewReader(ciphertext.Bytes()), dR, qR, qS); err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, "decrypted plaintext", plaintext, plaintextOut.Bytes())
	}
}

func TestEncryptDecrypt_MultiBlock(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	dR, qR := keyPair(t)

	plaintext := bytes.Repeat([]byte("0123456789abcdef"), (BlockSize*2)/16+37)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader(plaintext), dS, qS, []*group.Point{qR}, 0, 0); err != nil {
		t.Fatal(err)
	}

	var plaintextOut bytes.Buffer

	if _, err := DecryptMessage(&plaintextOut, bytes.NewReader(ciphertext.Bytes()), dR, qR, qS); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "decrypted plaintext", plaintext, plaintextOut.Bytes())
}

func TestDecrypt_WrongReceiver(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	_, qR := keyPair(t)
	otherDR, otherQR := keyPair(t)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader([]byte("hello")), dS, qS, []*group.Point{qR}, 5, 0); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if _, err := DecryptMessage(&out, bytes.NewReader(ciphertext.Bytes()), otherDR, otherQR, qS); err == nil {
		t.Fatal("decrypted a message addressed to someone else")
	}
}

func TestDecrypt_WrongSender(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	dR, qR := keyPair(t)
	_, otherQS := keyPair(t)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader([]byte("hello")), dS, qS, []*group.Point{qR}, 0, 0); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if _, err := DecryptMessage(&out, bytes.NewReader(ciphertext.Bytes()), dR, qR, otherQS); err == nil {
		t.Fatal("decrypted a message with the wrong claimed sender")
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	dR, qR := keyPair(t)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader([]byte("a message that should not be tampered with")), dS, qS, []*group.Point{qR}, 0, 0); err != nil {
		t.Fatal(err)
	}

	b := ciphertext.Bytes()
	b[len(b)-1] ^= 0x01

	var out bytes.Buffer
	if _, err := DecryptMessage(&out, bytes.NewReader(b), dR, qR, qS); err == nil {
		t.Fatal("decrypted tampered ciphertext without error")
	}
}

func TestDecrypt_NoValidHeader(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	_, qA := keyPair(t)
	_, qB := keyPair(t)
	otherDR, otherQR := keyPair(t)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader([]byte("hello")), dS, qS, []*group.Point{qA, qB}, 0, 0); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if _, err := DecryptMessage(&out, bytes.NewReader(ciphertext.Bytes()), otherDR, otherQR, qS); err == nil {
		t.Fatal("decrypted a message with no valid header")
	}
}

func TestEncryptDecrypt_ExactBlockMultiple(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	dR, qR := keyPair(t)

	plaintext := bytes.Repeat([]byte("x"), BlockSize*2)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader(plaintext), dS, qS, []*group.Point{qR}, 0, 0); err != nil {
		t.Fatal(err)
	}

	var plaintextOut bytes.Buffer

	if _, err := DecryptMessage(&plaintextOut, bytes.NewReader(ciphertext.Bytes()), dR, qR, qS); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "decrypted plaintext", plaintext, plaintextOut.Bytes())
}

func TestEncryptMessage_NegativeFakes(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	_, qR := keyPair(t)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader([]byte("hello")), dS, qS, []*group.Point{qR}, -1, 0); err != ErrInvalidParameters {
		t.Fatalf("got %v, want %v", err, ErrInvalidParameters)
	}
}

func TestEncryptMessage_NegativePadding(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	_, qR := keyPair(t)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader([]byte("hello")), dS, qS, []*group.Point{qR}, 0, -1); err != ErrInvalidParameters {
		t.Fatalf("got %v, want %v", err, ErrInvalidParameters)
	}
}

func TestEncryptMessage_ImplausibleFakes(t *testing.T) {
	t.Parallel()

	dS, qS := keyPair(t)
	_, qR := keyPair(t)

	var ciphertext bytes.Buffer

	if _, err := EncryptMessage(&ciphertext, bytes.NewReader([]byte("hello")), dS, qS, []*group.Point{qR}, MaxFakes+1, 0); err != ErrInvalidParameters {
		t.Fatalf("got %v, want %v", err, ErrInvalidParameters)
	}
}

func keyPair(t *testing.T) (*group.Scalar, *group.Point) {
	t.Helper()

	d, err := group.RandomScalar()
	if err != nil {
		t.Fatal(err)
	}

	return d, group.BaseMult(d)
}
