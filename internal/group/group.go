// Package group wraps a prime-order elliptic-curve group with the canonical
// scalar/point encodings, constant-time arithmetic, and group order veil's
// protocols need.
//
// veil.duplex-based protocols are specified against a jq255e-class group: a
// prime-order group with 32-byte canonical scalar and point encodings, a
// 256-bit group order q, a generator G, and constant-time scalar
// multiplication, point addition, and subtraction. ristretto255
// (github.com/gtank/ristretto255) fills this exact algebraic role
// throughout veil's internal packages; this package realizes the group on
// top of it.
package group

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/gtank/ristretto255"
)

// ScalarSize is the length of a canonical scalar encoding in bytes.
const ScalarSize = 32

// PointSize is the length of a canonical point encoding in bytes.
const PointSize = 32

// ErrInvalidEncoding is returned when a scalar or point cannot be decoded
// from its canonical form (non-canonical scalar, or off-curve/non-canonical
// point).
var ErrInvalidEncoding = errors.New("group: invalid encoding")

// order is the prime order q of the group, i.e. the order of the ristretto255
// scalar field.
var order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Scalar is an integer mod q.
type Scalar struct {
	s *ristretto255.Scalar
}

// Point is an element of the group.
type Point struct {
	p *ristretto255.Element
}

// NewScalar returns the zero scalar.
func NewScalar() *Scalar {
	return &Scalar{s: ristretto255.NewScalar()}
}

// NewPoint returns the identity point.
func NewPoint() *Point {
	return &Point{p: ristretto255.NewElement()}
}

// BaseMult returns [s]G, the scalar multiple of the generator.
func BaseMult(s *Scalar) *Point {
	return &Point{p: ristretto255.NewElement().ScalarBaseMult(s.s)}
}

// RandomScalar returns a scalar drawn uniformly from [0, q) using the system
// CSPRNG.
func RandomScalar() (*Scalar, error) {
	var b [64]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}

	return ReduceWide(b[:]), nil
}

// RandomPoint returns a point drawn uniformly from the group using the
// system CSPRNG — suitable for generating decoy public keys that are
// indistinguishable from real ones.
func RandomPoint() (*Point, error) {
	var b [64]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, err
	}

	return &Point{p: ristretto255.NewElement().FromUniformBytes(b[:])}, nil
}

// ReduceWide interprets b as a little-endian integer and reduces it mod q,
// returning the resulting scalar. b may be any length; the protocols pass
// 32-byte squeeze outputs, and RandomScalar passes 64 random bytes.
func ReduceWide(b []byte) *Scalar {
	n := new(big.Int).SetBytes(reverse(b))
	n.Mod(n, order)

	buf := make([]byte, ScalarSize)
	n.FillBytes(buf)
	reverseInPlace(buf)

	s := ristretto255.NewScalar()
	if err := s.Decode(buf); err != nil {
		// n < order by construction, so buf is always a canonical encoding.
		panic(err)
	}

	return &Scalar{s: s}
}

// DecodeShortScalar embeds a short little-endian value, such as the
// 16-byte challenge schnorr and mres squeeze from their duplexes, into a
// full-width scalar by placing it in the low-order bytes and zeroing the
// rest. short must be no longer than ScalarSize.
func DecodeShortScalar(short []byte) *Scalar {
	var buf [ScalarSize]byte
	copy(buf[:], short)

	s, err := DecodeScalar(buf[:])
	if err != nil {
		// buf's high-order bytes are zero, so its integer value is always
		// less than q; this can never fail.
		panic(err)
	}

	return s
}

// DecodeScalar decodes a canonical 32-byte scalar encoding, rejecting any
// encoding of a value >= q.
func DecodeScalar(b []byte) (*Scalar, error) {
	if len(b) != ScalarSize {
		return nil, ErrInvalidEncoding
	}

	s := ristretto255.NewScalar()
	if err := s.Decode(b); err != nil {
		return nil, ErrInvalidEncoding
	}

	return &Scalar{s: s}, nil
}

// DecodePoint decodes a canonical 32-byte point encoding, rejecting any
// off-curve or non-canonical encoding.
func DecodePoint(b []byte) (*Point, error) {
	if len(b) != PointSize {
		return nil, ErrInvalidEncoding
	}

	p := ristretto255.NewElement()
	if err := p.Decode(b); err != nil {
		return nil, ErrInvalidEncoding
	}

	return &Point{p: p}, nil
}

// Encode returns the canonical 32-byte encoding of s.
func (s *Scalar) Encode() []byte {
	return s.s.Encode(make([]byte, 0, ScalarSize))
}

// Add returns s + t mod q.
func (s *Scalar) Add(t *Scalar) *Scalar {
	return &Scalar{s: ristretto255.NewScalar().Add(s.s, t.s)}
}

// Multiply returns s * t mod q.
func (s *Scalar) Multiply(t *Scalar) *Scalar {
	return &Scalar{s: ristretto255.NewScalar().Multiply(s.s, t.s)}
}

// Zero overwrites s with the zero scalar, rendering it unrecoverable.
func (s *Scalar) Zero() {
	*s.s = *ristretto255.NewScalar()
}

// Encode returns the canonical 32-byte encoding of p.
func (p *Point) Encode() []byte {
	return p.p.Encode(make([]byte, 0, PointSize))
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	return &Point{p: ristretto255.NewElement().Add(p.p, q.p)}
}

// Subtract returns p - q.
func (p *Point) Subtract(q *Point) *Point {
	return &Point{p: ristretto255.NewElement().Subtract(p.p, q.p)}
}

// Mult returns [s]p.
func (p *Point) Mult(s *Scalar) *Point {
	return &Point{p: ristretto255.NewElement().ScalarMult(s.s, p.p)}
}

// Equal reports, in constant time, whether p and q encode the same point.
func (p *Point) Equal(q *Point) bool {
	return p.p.Equal(q.p) == 1
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}

	return out
}

func reverseInPlace(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
