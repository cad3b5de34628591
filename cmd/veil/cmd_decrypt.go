package main

import (
	"github.com/alecthomas/kong"
)

type decryptCmd struct {
	PrivateKey string `arg:"" type:"existingfile" help:"The path to the receiver's sealed private key."`
	Sender     string `arg:"" help:"The public key of the sender."`
	Ciphertext string `arg:"" type:"existingfile" help:"The path to the ciphertext file."`
	Plaintext  string `arg:"" type:"path" help:"The path to the plaintext file."`

	PassphraseFile string `help:"Read the passphrase from this file instead of prompting for it."`
}

func (cmd *decryptCmd) Run(_ *kong.Context) error {
	sk, err := openPrivateKey(cmd.PrivateKey, cmd.PassphraseFile)
	if err != nil {
		return err
	}

	sender, err := decodePublicKey(cmd.Sender)
	if err != nil {
		return err
	}

	src, err := openInput(cmd.Ciphertext)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	dst, err := openOutput(cmd.Plaintext)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = sk.Decrypt(dst, src, sender)

	return err
}
