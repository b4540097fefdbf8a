package main

import (
	"io"

	"github.com/alecthomas/kong"
)

type pubkeyCmd struct {
	PrivateKey string `arg:"" help:"The path to the private key, or - to enter it."`
	Output     string `arg:"" type:"path" default:"-" help:"The output path for the public key."`
}

func (cmd *pubkeyCmd) Run(_ *kong.Context, e *env) error {
	// Read the private key.
	pk, err := e.readPrivateKey(cmd.PrivateKey)
	if err != nil {
		return err
	}

	// Open the output.
	dst, err := e.openOutput(cmd.Output)
	if err != nil {
		return err
	}

	defer func() { _ = dst.Close() }()

	// Derive the public key, encode it, and write it to the output.
	_, err = io.WriteString(dst, pk.PublicKey().String()+"\n")

	return err
}
