package internal

import (
	"bytes"
	"testing"
)

func TestASCIIEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte("a yellow submarine")

	decoded, err := ASCIIDecode(ASCIIEncode(data))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(data, decoded) {
		t.Fatalf("got %x, want %x", decoded, data)
	}
}

func TestIntN(t *testing.T) {
	t.Parallel()

	for i := 0; i < 10_000; i++ {
		j := IntN(10_000)
		if 0 > j || j >= 10_000 {
			t.Fatalf("%d is outside [0,10_000)", j)
		}
	}
}
