package main

import (
	"github.com/alecthomas/kong"
	"github.com/walletseal/seal/pkg/seal"
	"github.com/walletseal/seal/pkg/seal/armor"
)

type encryptCmd struct {
	PrivateKey string `arg:"" help:"The path to the sender's private key, or - to enter it."`
	Recipient  string `arg:"" help:"The recipient's public key, or the path to it."`
	Plaintext  string `arg:"" help:"The path to the plaintext file, or - for stdin."`
	Ciphertext string `arg:"" type:"path" default:"-" help:"The path to the ciphertext file."`

	Armor  bool `help:"Encode the envelope as ASCII armor."`
	Signed bool `help:"Sign the envelope so its sender can be checked without decrypting it."`
	Legacy bool `help:"Use the legacy key conversion."`
}

func (cmd *encryptCmd) Run(_ *kong.Context, e *env) error {
	// Read the sender's private key.
	pk, err := e.readPrivateKey(cmd.PrivateKey)
	if err != nil {
		return err
	}

	// Decode the recipient's public key.
	recipient, err := decodePublicKey(cmd.Recipient)
	if err != nil {
		return err
	}

	// Read the plaintext.
	plaintext, err := e.readInput(cmd.Plaintext)
	if err != nil {
		return err
	}

	defer wipe(plaintext)

	// Encrypt and encode the plaintext.
	opts := e.options(cmd.Legacy)

	var out []byte

	if cmd.Signed {
		signed, err := seal.EncryptAndSign(pk, recipient, plaintext, opts...)
		if err != nil {
			return err
		}

		out, err = signed.Encode()
		if err != nil {
			return err
		}
	} else {
		envelope, err := pk.Encrypt(recipient, plaintext, opts...)
		if err != nil {
			return err
		}

		out, err = envelope.Encode()
		if err != nil {
			return err
		}
	}

	e.log.Debug("encrypted message",
		"sender", pk.PublicKey().String(), "recipient", recipient.String(), "signed", cmd.Signed,
		"size", len(plaintext))

	// Armor the envelope, if requested.
	if cmd.Armor || e.cfg.Armor {
		out = armor.Encode(out)
	} else {
		out = append(out, '\n')
	}

	// Write out the envelope.
	dst, err := e.openOutput(cmd.Ciphertext)
	if err != nil {
		return err
	}

	if _, err := dst.Write(out); err != nil {
		_ = dst.Close()

		return err
	}

	return dst.Close()
}
