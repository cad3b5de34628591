package main

import (
	"github.com/alecthomas/kong"
)

type signCmd struct {
	PrivateKey string `arg:"" type:"existingfile" help:"The path to the signer's sealed private key."`
	Message    string `arg:"" type:"existingfile" help:"The path to the message."`
	Signature  string `arg:"" type:"path" help:"The path to the signature file."`

	PassphraseFile string `help:"Read the passphrase from this file instead of prompting for it."`
}

func (cmd *signCmd) Run(_ *kong.Context) error {
	sk, err := openPrivateKey(cmd.PrivateKey, cmd.PassphraseFile)
	if err != nil {
		return err
	}

	src, err := openInput(cmd.Message)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	sig, err := sk.Sign(src)
	if err != nil {
		return err
	}

	text, err := sig.MarshalText()
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Signature)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = dst.Write(text)

	return err
}
