package main

import (
	"io"

	"github.com/alecthomas/kong"
)

type publicKeyCmd struct {
	PrivateKey string `arg:"" type:"existingfile" help:"The path to the sealed private key."`
	Output     string `arg:"" type:"path" default:"-" help:"The output path for the public key."`

	PassphraseFile string `help:"Read the passphrase from this file instead of prompting for it."`
}

func (cmd *publicKeyCmd) Run(_ *kong.Context) error {
	pk, err := openPrivateKey(cmd.PrivateKey, cmd.PassphraseFile)
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = io.WriteString(dst, pk.PublicKey().String()+"\n")

	return err
}
