package main

import (
	"github.com/alecthomas/kong"

	"github.com/nvzqz/veil/pkg/veil"
)

type privateKeyCmd struct {
	Output string `arg:"" type:"path" default:"-" help:"The output path for the encrypted private key."`

	PassphraseFile string `help:"Read the passphrase from this file instead of prompting for it."`
	Time           byte   `default:"10" help:"The balloon hashing time cost, 1-255."`
	Space          byte   `default:"14" help:"The balloon hashing space cost, 1-31."`
}

func (cmd *privateKeyCmd) Run(_ *kong.Context) error {
	passphrase, err := readPassphrase(cmd.PassphraseFile)
	if err != nil {
		return err
	}

	pk, err := veil.NewPrivateKey()
	if err != nil {
		return err
	}

	sealed, err := veil.EncryptPrivateKey(pk, passphrase, cmd.Time, cmd.Space)
	if err != nil {
		return err
	}

	dst, err := openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	_, err = dst.Write(sealed)

	return err
}
