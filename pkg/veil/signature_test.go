package veil

import (
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestSignature_TextRoundTrip(t *testing.T) {
	t.Parallel()

	var s Signature
	if err := s.UnmarshalBinary([]byte("ayellowsubmarineayellowsubmarineayellowsubmarineayellowsubmarine")); err != nil {
		t.Fatal(err)
	}

	text, err := s.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var decoded Signature
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	b, err := decoded.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip",
		[]byte("ayellowsubmarineayellowsubmarineayellowsubmarineayellowsubmarine"), b)
}

func TestSignature_UnmarshalBinary_WrongLength(t *testing.T) {
	t.Parallel()

	var s Signature
	if err := s.UnmarshalBinary([]byte("too short")); err != ErrInvalidSignature {
		t.Fatalf("got %v, want %v", err, ErrInvalidSignature)
	}
}

func TestSignature_String(t *testing.T) {
	t.Parallel()

	var s Signature
	if err := s.UnmarshalBinary([]byte("ayellowsubmarineayellowsubmarineayellowsubmarineayellowsubmarine")); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "string matches MarshalText", s.String(), mustMarshalText(t, &s))
}

func mustMarshalText(t *testing.T, s *Signature) string {
	t.Helper()

	text, err := s.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	return string(text)
}
