// Package mres implements veil's multi-receiver streaming signcryption: a
// table of sres headers carrying a data encryption key to every receiver
// (real and decoy alike), followed by block-wise duplex encryption of the
// payload, terminated by a short Schnorr-style proof of the sender's
// identity.
//
// An earlier generation of this package built the same headers-then-
// stream-then-signature shape on STROBE's SEND_ENC/SEND_MAC/SEND_CLR
// operations, with per-recipient footers appended after the ciphertext and
// located by seeking backward from the end of the message. This generation
// moves the header table to the front (so a receiver can start decrypting
// as soon as they find their header, without first seeking to the end) and
// folds the DEK, receiver count, and padding length into a single sres
// header payload per receiver, with a short encrypted commitment and proof
// taking the place of the footer signature.
package mres

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/nvzqz/veil/internal"
	"github.com/nvzqz/veil/internal/duplex"
	"github.com/nvzqz/veil/internal/group"
	"github.com/nvzqz/veil/internal/hedge"
	"github.com/nvzqz/veil/internal/sres"
)

// BlockSize is the number of plaintext bytes encrypted per block.
const BlockSize = 32 * 1024

// TagSize is the length, in bytes, of the authentication tag appended to
// each encrypted block.
const TagSize = 16

// NonceSize is the length, in bytes, of the per-message and per-header
// nonces.
const NonceSize = 16

// TrailerSize is the length, in bytes, of the encrypted trailer: a
// commitment point and a response scalar.
const TrailerSize = group.PointSize + group.ScalarSize

// shortProofSize is the length, in bytes, of the short challenge squeezed
// from the duplex when verifying the trailer.
const shortProofSize = 16

// MaxHeaders bounds the number of headers DecryptMessage will scan before
// giving up. It exists so a corrupt or hostile ciphertext with no valid
// header for the receiver can't force an unbounded scan.
const MaxHeaders = 1 << 16

// MaxFakes and MaxPadding bound the fakes and padding parameters accepted
// by EncryptMessage. They exist so a caller can't be tricked or misconfigured
// into an encryption call that allocates an implausible amount of memory.
const (
	MaxFakes   = 1 << 20
	MaxPadding = 1 << 30
)

// ErrInvalidCiphertext is returned when a ciphertext cannot be decrypted,
// either because it's addressed to someone else, has been tampered with,
// or is malformed.
var ErrInvalidCiphertext = errors.New("mres: invalid ciphertext")

// ErrInvalidParameters is returned when fakes or padding is negative or
// implausibly large.
var ErrInvalidParameters = errors.New("mres: invalid fakes/padding parameters")

// EncryptMessage reads the plaintext in src, signcrypts it for every
// public key in qRs plus fakes decoy receivers (shuffled together so a
// receiver can't tell real recipients from decoys by position), and writes
// the result to dst. padding random bytes are added after the header table
// to disguise the true receiver count.
func EncryptMessage(
	dst io.Writer, src io.Reader, dS *group.Scalar, qS *group.Point, qRs []*group.Point, fakes, padding int,
) (int64, error) {
	var written int64

	if padding < 0 || padding > MaxPadding {
		return 0, ErrInvalidParameters
	}

	receivers, err := shuffledReceivers(qRs, fakes)
	if err != nil {
		return 0, err
	}

	d := duplex.Init("veil.mres")
	defer d.Zero()

	d.Absorb(qS.Encode())

	k, err := hedge.Scalar(d, dS.Encode(), 32)
	if err != nil {
		return 0, fmt.Errorf("mres: deriving commitment scalar: %w", err)
	}

	dE, err := hedge.Scalar(d, dS.Encode(), 32)
	if err != nil {
		return 0, fmt.Errorf("mres: deriving ephemeral key: %w", err)
	}

	dek, err := hedge.Bytes(d, dS.Encode(), 32)
	if err != nil {
		return 0, fmt.Errorf("mres: deriving data encryption key: %w", err)
	}

	defer zero(dek)

	nonce, err := hedge.Bytes(d, dS.Encode(), NonceSize)
	if err != nil {
		return 0, fmt.Errorf("mres: deriving nonce: %w", err)
	}

	n, err := dst.Write(nonce)
	written += int64(n)

	if err != nil {
		return written, err
	}

	d.Absorb(nonce)

	h := make([]byte, sres.HeaderPayloadSize)
	copy(h, dek)
	binary.LittleEndian.PutUint32(h[32:36], uint32(len(receivers)))
	binary.LittleEndian.PutUint32(h[36:40], uint32(padding))

	for _, qR := range receivers {
		hdrNonce := d.SqueezeKey(NonceSize)

		e, err := sres.EncryptHeader(dS, qS, dE, qR, hdrNonce, h)
		if err != nil {
			return written, fmt.Errorf("mres: encrypting header: %w", err)
		}

		d.Absorb(e)

		n, err := dst.Write(e)
		written += int64(n)

		if err != nil {
			return written, err
		}
	}

	pad := make([]byte, padding)
	if _, err := rand.Read(pad); err != nil {
		return written, fmt.Errorf("mres: generating padding: %w", err)
	}

	d.Absorb(pad)

	n, err = dst.Write(pad)
	written += int64(n)

	if err != nil {
		return written, err
	}

	d.Absorb(dek)
	d.Cyclist(d.SqueezeKey(32))

	block := make([]byte, BlockSize)

	for {
		bn, rerr := io.ReadFull(src, block)
		if bn > 0 {
			ct := d.Encrypt(nil, block[:bn])

			n, werr := dst.Write(ct)
			written += int64(n)

			if werr != nil {
				return written, werr
			}

			tag := d.Squeeze(TagSize)

			n, werr = dst.Write(tag)
			written += int64(n)

			if werr != nil {
				return written, werr
			}
		}

		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			break
		}

		if rerr != nil {
			return written, rerr
		}
	}

	commitment := group.BaseMult(k)

	ct := d.Encrypt(nil, commitment.Encode())

	n, err = dst.Write(ct)
	written += int64(n)

	if err != nil {
		return written, err
	}

	r := group.DecodeShortScalar(d.Squeeze(shortProofSize))
	s := dE.Multiply(r).Add(k)

	ct = d.Encrypt(nil, s.Encode())

	n, err = dst.Write(ct)
	written += int64(n)

	return written, err
}

// DecryptMessage reads the ciphertext in src, and if it was signcrypted by
// the holder of qS for the receiver's key pair (dR, qR implied), decrypts
// it and writes the plaintext to dst.
//
// Because Veil messages are streamed, it's possible for DecryptMessage to
// write some decrypted data to dst before discovering the ciphertext is
// invalid. If DecryptMessage returns an error, any output written to dst
// must be discarded.
func DecryptMessage(dst io.Writer, src io.Reader, dR *group.Scalar, qR, qS *group.Point) (int64, error) {
	var written int64

	d := duplex.Init("veil.mres")
	defer d.Zero()

	d.Absorb(qS.Encode())

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(src, nonce); err != nil {
		return 0, fmt.Errorf("mres: reading nonce: %w", err)
	}

	d.Absorb(nonce)

	var (
		found      bool
		qE         *group.Point
		dek        []byte
		recvCount  uint32
		paddingLen uint32
	)

	defer func() { zero(dek) }()

	for i := 0; i < MaxHeaders; i++ {
		hdrNonce := d.SqueezeKey(NonceSize)

		hdr := make([]byte, sres.HeaderLen)
		if _, err := io.ReadFull(src, hdr); err != nil {
			return written, ErrInvalidCiphertext
		}

		d.Absorb(hdr)

		if !found {
			if gotQE, h, ok := sres.DecryptHeader(dR, qS, hdrNonce, hdr); ok {
				count := binary.LittleEndian.Uint32(h[32:36])
				if count == 0 || count <= uint32(i) {
					return written, ErrInvalidCiphertext
				}

				found = true
				qE = gotQE
				dek = append([]byte(nil), h[:32]...)
				recvCount = count
				paddingLen = binary.LittleEndian.Uint32(h[36:40])
			}
		}

		if found && uint32(i) == recvCount-1 {
			break
		}
	}

	if !found {
		return written, ErrInvalidCiphertext
	}

	pad := make([]byte, paddingLen)
	if _, err := io.ReadFull(src, pad); err != nil {
		return written, ErrInvalidCiphertext
	}

	d.Absorb(pad)

	d.Absorb(dek)
	d.Cyclist(d.SqueezeKey(32))

	const chunkSize = BlockSize + TagSize

	window := make([]byte, chunkSize+TrailerSize)

	n, err := readAtMost(src, window)
	if err != nil {
		return written, err
	}

	for n == len(window) {
		chunk := window[:chunkSize]
		ct, tag := chunk[:len(chunk)-TagSize], chunk[len(chunk)-TagSize:]

		pt := d.Decrypt(nil, ct)

		wn, werr := dst.Write(pt)
		written += int64(wn)

		if werr != nil {
			return written, werr
		}

		gotTag := d.Squeeze(TagSize)
		if subtle.ConstantTimeCompare(tag, gotTag) != 1 {
			return written, ErrInvalidCiphertext
		}

		copy(window, window[chunkSize:])

		more, rerr := readAtMost(src, window[TrailerSize:])
		if rerr != nil {
			return written, rerr
		}

		n = TrailerSize + more
	}

	if n < TrailerSize {
		return written, ErrInvalidCiphertext
	}

	lastChunk, trailer := window[:n-TrailerSize], window[n-TrailerSize:n]

	if len(lastChunk) > 0 {
		if len(lastChunk) < TagSize {
			return written, ErrInvalidCiphertext
		}

		ct, tag := lastChunk[:len(lastChunk)-TagSize], lastChunk[len(lastChunk)-TagSize:]

		pt := d.Decrypt(nil, ct)

		wn, werr := dst.Write(pt)
		written += int64(wn)

		if werr != nil {
			return written, werr
		}

		gotTag := d.Squeeze(TagSize)
		if subtle.ConstantTimeCompare(tag, gotTag) != 1 {
			return written, ErrInvalidCiphertext
		}
	}

	commitmentBytes := d.Decrypt(nil, trailer[:group.PointSize])

	commitment, err := group.DecodePoint(commitmentBytes)
	if err != nil {
		return written, ErrInvalidCiphertext
	}

	r := group.DecodeShortScalar(d.Squeeze(shortProofSize))

	sBytes := d.Decrypt(nil, trailer[group.PointSize:])

	s, err := group.DecodeScalar(sBytes)
	if err != nil {
		return written, ErrInvalidCiphertext
	}

	wantCommitment := group.BaseMult(s).Subtract(qE.Mult(r))
	if !commitment.Equal(wantCommitment) {
		return written, ErrInvalidCiphertext
	}

	return written, nil
}

// zero overwrites buf with zeros, for scrubbing the data encryption key
// before it's dropped.
func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// readAtMost reads into buf, filling as much of it as src has available. It
// treats reaching the end of src as success rather than an error, the way
// callers here need to distinguish a short final read from a real I/O
// failure.
func readAtMost(src io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(src, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}

	return n, err
}

// shuffledReceivers returns qRs plus fakes decoy public keys, in a
// random order, so a receiver can't tell the real receivers from the
// decoys by their position in the header table.
func shuffledReceivers(qRs []*group.Point, fakes int) ([]*group.Point, error) {
	if fakes < 0 || fakes > MaxFakes {
		return nil, ErrInvalidParameters
	}

	all := make([]*group.Point, len(qRs)+fakes)

	copy(all, qRs)

	for i := len(qRs); i < len(all); i++ {
		q, err := group.RandomPoint()
		if err != nil {
			return nil, fmt.Errorf("mres: generating decoy receiver: %w", err)
		}

		all[i] = q
	}

	for i := len(all) - 1; i > 0; i-- {
		j := internal.IntN(i + 1)
		all[i], all[j] = all[j], all[i]
	}

	return all, nil
}
