package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/nvzqz/veil/internal"
	"github.com/nvzqz/veil/internal/duplex"
)

type digestCmd struct {
	Message string `arg:"" type:"existingfile" default:"-" help:"The path to the message."`

	Size int `default:"32" help:"The digest size in bytes, 1-32."`
}

func (cmd *digestCmd) Run(_ *kong.Context) error {
	if cmd.Size < 1 || cmd.Size > 32 {
		return errors.New("digest size must be between 1 and 32 bytes")
	}

	src, err := openInput(cmd.Message)
	if err != nil {
		return err
	}

	defer func() { _ = src.Close() }()

	d := duplex.Init("veil.digest")

	buf := make([]byte, 32*1024)

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			d.Absorb(buf[:n])
		}

		if rerr == io.EOF {
			break
		}

		if rerr != nil {
			return rerr
		}
	}

	sum := d.SqueezeKey(cmd.Size)

	fmt.Println(string(internal.ASCIIEncode(sum)))

	return nil
}
