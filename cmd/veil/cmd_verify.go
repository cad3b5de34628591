package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/nvzqz/veil/pkg/veil"
)

type verifyCmd struct {
	PublicKey string `arg:"" help:"The signer's public key."`
	Message   string `arg:"" type:"existingfile" help:"The path to the message."`
	Signature string `arg:"" type:"existingfile" help:"The path to the signature file."`
}

func (cmd *verifyCmd) Run(_ *kong.Context) error {
	pk, err := decodePublicKey(cmd.PublicKey)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(cmd.Signature)
	if err != nil {
		return err
	}

	var sig veil.Signature
	if err := sig.UnmarshalText(text); err != nil {
		return err
	}

	src, err := openInput(cmd.Message)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	return pk.Verify(src, &sig)
}
