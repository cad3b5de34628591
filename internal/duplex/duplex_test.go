package duplex

import (
	"bytes"
	"testing"

	"github.com/codahale/gubbins/assert"
)

func TestInit_Deterministic(t *testing.T) {
	t.Parallel()

	a := Init("test")
	b := Init("test")

	assert.Equal(t, "squeeze key", a.SqueezeKey(32), b.SqueezeKey(32))
}

func TestInit_DomainSeparated(t *testing.T) {
	t.Parallel()

	a := Init("test-a")
	b := Init("test-b")

	if bytes.Equal(a.SqueezeKey(32), b.SqueezeKey(32)) {
		t.Fatal("different domain strings produced the same key")
	}
}

func TestAbsorb_ChunkingInvariant(t *testing.T) {
	t.Parallel()

	msg := []byte("this message is absorbed either in one call or many")

	a := Init("chunking")
	a.Absorb(msg)

	b := Init("chunking")
	for _, chunk := range splitInto(msg, 7) {
		b.Absorb(chunk)
	}

	assert.Equal(t, "chunked absorb matches single-call absorb", a.SqueezeKey(32), b.SqueezeKey(32))
}

func TestAbsorb_OrderMatters(t *testing.T) {
	t.Parallel()

	a := Init("order")
	a.Absorb([]byte("one"))
	a.Absorb([]byte("two"))

	b := Init("order")
	b.Absorb([]byte("two"))
	b.Absorb([]byte("one"))

	if bytes.Equal(a.SqueezeKey(32), b.SqueezeKey(32)) {
		t.Fatal("absorbing \"one\" then \"two\" matched absorbing \"two\" then \"one\"")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	key := []byte("a sixteen byte key")
	plaintext := bytes.Repeat([]byte("the quick brown fox jumps"), 20)

	enc := Init("stream")
	enc.Cyclist(key)

	ciphertext := enc.Encrypt(nil, plaintext)
	tag := enc.Squeeze(TagSize)

	dec := Init("stream")
	dec.Cyclist(key)

	recovered := dec.Decrypt(nil, ciphertext)
	recoveredTag := dec.Squeeze(TagSize)

	assert.Equal(t, "recovered plaintext", plaintext, recovered)
	assert.Equal(t, "recovered tag", tag, recoveredTag)
}

func TestEncrypt_ChunkingInvariant(t *testing.T) {
	t.Parallel()

	key := []byte("a key")
	plaintext := bytes.Repeat([]byte("0123456789"), 50)

	a := Init("chunked-encrypt")
	a.Cyclist(key)
	ca := a.Encrypt(nil, plaintext)
	ta := a.Squeeze(TagSize)

	b := Init("chunked-encrypt")
	b.Cyclist(key)

	var cb []byte
	for _, chunk := range splitInto(plaintext, 13) {
		cb = b.Encrypt(cb, chunk)
	}

	tb := b.Squeeze(TagSize)

	assert.Equal(t, "ciphertext", ca, cb)
	assert.Equal(t, "tag", ta, tb)
}

func TestDecrypt_DetectsTampering(t *testing.T) {
	t.Parallel()

	key := []byte("a key")
	plaintext := []byte("attack at dawn")

	enc := Init("tamper")
	enc.Cyclist(key)
	ciphertext := enc.Encrypt(nil, plaintext)
	tag := enc.Squeeze(TagSize)

	tampered := append([]byte(nil), ciphertext...)
	tampered[0] ^= 0x01

	dec := Init("tamper")
	dec.Cyclist(key)
	dec.Decrypt(nil, tampered)
	gotTag := dec.Squeeze(TagSize)

	if bytes.Equal(tag, gotTag) {
		t.Fatal("tampering with the ciphertext didn't change the recovered tag")
	}
}

func TestSqueeze_DifferentFromEncryptOutput(t *testing.T) {
	t.Parallel()

	key := []byte("a key")

	a := Init("squeeze-vs-encrypt")
	a.Cyclist(key)
	out := a.Squeeze(32)

	b := Init("squeeze-vs-encrypt")
	b.Cyclist(key)
	zero := make([]byte, 32)
	enc := b.Encrypt(nil, zero)

	if bytes.Equal(out, enc) {
		t.Fatal("Squeeze and Encrypt(zero) under the same key produced the same output")
	}
}

func TestRatchet_ForgetsPastState(t *testing.T) {
	t.Parallel()

	a := Init("ratchet")
	a.Cyclist([]byte("key"))
	a.Ratchet()
	outA := a.Squeeze(32)

	b := Init("ratchet")
	b.Cyclist([]byte("key"))
	b.Ratchet()
	outB := b.Squeeze(32)

	assert.Equal(t, "ratchet is deterministic", outA, outB)
}

func TestClone_IndependentState(t *testing.T) {
	t.Parallel()

	a := Init("clone")
	a.Cyclist([]byte("key"))

	b := a.Clone()

	a.Encrypt(nil, []byte("diverge"))

	outA := a.Squeeze(16)
	outB := b.Squeeze(16)

	if bytes.Equal(outA, outB) {
		t.Fatal("mutating the original duplex also mutated its clone")
	}
}

func TestZero_ClearsState(t *testing.T) {
	t.Parallel()

	a := Init("zero")
	a.Cyclist([]byte("key"))
	a.Zero()

	var want [200]byte

	assert.Equal(t, "zeroed state", want[:], a.state[:])
}

func splitInto(b []byte, n int) [][]byte {
	var out [][]byte

	for len(b) > 0 {
		k := n
		if k > len(b) {
			k = len(b)
		}

		out = append(out, b[:k])
		b = b[k:]
	}

	return out
}
