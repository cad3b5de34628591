package veil

import (
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestPublicKey_TextRoundTrip(t *testing.T) {
	t.Parallel()

	pk, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	text, err := pk.PublicKey().MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var decoded PublicKey
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", pk.PublicKey().String(), decoded.String())
}

func TestPublicKey_BinaryRoundTrip(t *testing.T) {
	t.Parallel()

	pk, err := NewPrivateKey()
	if err != nil {
		t.Fatal(err)
	}

	data, err := pk.PublicKey().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var decoded PublicKey
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", pk.PublicKey().String(), decoded.String())
}

func TestPublicKey_UnmarshalBinary_Invalid(t *testing.T) {
	t.Parallel()

	var pk PublicKey
	if err := pk.UnmarshalBinary([]byte("too short")); err == nil {
		t.Fatal("accepted an invalid public key encoding")
	}
}
