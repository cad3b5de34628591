package veil

import (
	"bufio"
	"io"

	"github.com/nvzqz/veil/internal/group"
	"github.com/nvzqz/veil/internal/mres"
	"github.com/nvzqz/veil/internal/schnorr"
)

// PrivateKey is a private key, used to decrypt and sign messages.
type PrivateKey struct {
	d *group.Scalar
	q *group.Point
}

// NewPrivateKey generates a new, random PrivateKey.
func NewPrivateKey() (*PrivateKey, error) {
	d, err := group.RandomScalar()
	if err != nil {
		return nil, err
	}

	return &PrivateKey{d: d, q: group.BaseMult(d)}, nil
}

// PublicKey returns the corresponding PublicKey for the receiver.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{q: pk.q}
}

// Encrypt encrypts the data from src such that all recipients will be able to decrypt and
// authenticate it and writes the results to dst. fakes decoy recipients are added and padding
// random bytes are appended to the header table to disguise the true recipient count. Returns the
// number of bytes written and the first error reported while encrypting, if any.
func (pk *PrivateKey) Encrypt(
	dst io.Writer, src io.Reader, recipients []*PublicKey, fakes, padding int,
) (int64, error) {
	qRs := make([]*group.Point, len(recipients))
	for i, r := range recipients {
		qRs[i] = r.q
	}

	in := bufio.NewReader(src)
	out := bufio.NewWriter(dst)

	n, err := mres.EncryptMessage(out, in, pk.d, pk.q, qRs, fakes, padding)
	if err != nil {
		return n, err
	}

	return n, out.Flush()
}

// Decrypt decrypts the data in src if originally encrypted by the given public key. Returns the
// number of decrypted bytes written, and the first reported error, if any.
//
// N.B.: Because Veil messages are streamed, it is possible that this may write some decrypted data
// to dst before it can discover that the ciphertext is invalid. If Decrypt returns an error, all
// output written to dst should be discarded, as it cannot be ascertained to be authentic.
func (pk *PrivateKey) Decrypt(dst io.Writer, src io.Reader, sender *PublicKey) (int64, error) {
	in := bufio.NewReader(src)
	out := bufio.NewWriter(dst)

	n, err := mres.DecryptMessage(out, in, pk.d, pk.q, sender.q)
	if err != nil {
		return n, err
	}

	return n, out.Flush()
}

// Sign returns a signature of the contents of src.
func (pk *PrivateKey) Sign(src io.Reader) (*Signature, error) {
	signer := schnorr.NewSigner(pk.d, pk.q)
	if _, err := io.Copy(signer, bufio.NewReader(src)); err != nil {
		return nil, err
	}

	sig, err := signer.Sign()
	if err != nil {
		return nil, err
	}

	return &Signature{b: sig}, nil
}
