package main

import (
	"github.com/alecthomas/kong"
)

type encryptCmd struct {
	PrivateKey string   `arg:"" type:"existingfile" help:"The path to the sender's sealed private key."`
	Plaintext  string   `arg:"" type:"existingfile" help:"The path to the plaintext file."`
	Ciphertext string   `arg:"" type:"path" help:"The path to the ciphertext file."`
	Recipients []string `arg:"" repeated:"" help:"The public keys of the recipients."`

	PassphraseFile string `help:"Read the passphrase from this file instead of prompting for it."`
	Fakes          int    `help:"The number of fake recipients to add."`
	Padding        int    `help:"The number of bytes of random padding to add."`
}

func (cmd *encryptCmd) Run(_ *kong.Context) error {
	sk, err := openPrivateKey(cmd.PrivateKey, cmd.PassphraseFile)
	if err != nil {
		return err
	}

	recipients, err := decodePublicKeys(cmd.Recipients)
	if err != nil {
		return err
	}

	src, err := openInput(cmd.Plaintext)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	dst, err := openOutput(cmd.Ciphertext)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = sk.Encrypt(dst, src, recipients, cmd.Fakes, cmd.Padding)

	return err
}
