package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/nvzqz/veil/pkg/veil"
)

type cli struct {
	PrivateKey privateKeyCmd `cmd:"" name:"private-key" help:"Generate a new passphrase-sealed private key."`
	PublicKey  publicKeyCmd  `cmd:"" name:"public-key" help:"Print the public key for a sealed private key."`
	Encrypt    encryptCmd    `cmd:"" help:"Encrypt a message for a set of recipients."`
	Decrypt    decryptCmd    `cmd:"" help:"Decrypt a message."`
	Sign       signCmd       `cmd:"" help:"Create a detached signature for a message."`
	Verify     verifyCmd     `cmd:"" help:"Verify a detached signature for a message."`
	Digest     digestCmd     `cmd:"" help:"Print a digest of a message."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func decodePublicKeys(pathsOrKeys []string) (keys []*veil.PublicKey, err error) {
	keys = make([]*veil.PublicKey, len(pathsOrKeys))

	for i, path := range pathsOrKeys {
		keys[i], err = decodePublicKey(path)
		if err != nil {
			return nil, err
		}
	}

	return
}

func decodePublicKey(pathOrKey string) (*veil.PublicKey, error) {
	// Try decoding the key directly.
	var pk veil.PublicKey
	if err := pk.UnmarshalText([]byte(pathOrKey)); err == nil {
		return &pk, nil
	}

	// Otherwise, try reading the contents of it as a file.
	b, err := os.ReadFile(pathOrKey)
	if err != nil {
		return nil, err
	}

	if err := pk.UnmarshalText(b); err != nil {
		return nil, err
	}

	return &pk, nil
}

func openPrivateKey(path, passphraseFile string) (*veil.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	passphrase, err := readPassphrase(passphraseFile)
	if err != nil {
		return nil, err
	}

	return veil.DecryptPrivateKey(b, passphrase)
}

func readPassphrase(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}

	return askPassphrase("Enter passphrase: ")
}

func askPassphrase(prompt string) ([]byte, error) {
	defer func() { _, _ = fmt.Fprintln(os.Stderr) }()

	_, _ = fmt.Fprint(os.Stderr, prompt)

	return term.ReadPassword(int(os.Stdin.Fd()))
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	return os.Create(path)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

var _ io.WriteCloser = nopCloser{}
