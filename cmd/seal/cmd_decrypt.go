package main

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/walletseal/seal/pkg/seal"
	"github.com/walletseal/seal/pkg/seal/armor"
)

type decryptCmd struct {
	PrivateKey string `arg:"" help:"The path to the recipient's private key, or - to enter it."`
	Ciphertext string `arg:"" help:"The path to the ciphertext file, or - for stdin."`
	Plaintext  string `arg:"" type:"path" default:"-" help:"The path to the plaintext file."`

	Legacy bool `help:"Use the legacy key conversion."`
}

func (cmd *decryptCmd) Run(_ *kong.Context, e *env) error {
	// Read the recipient's private key.
	pk, err := e.readPrivateKey(cmd.PrivateKey)
	if err != nil {
		return err
	}

	// Read the envelope and de-armor it, if needed.
	in, err := e.readInput(cmd.Ciphertext)
	if err != nil {
		return err
	}

	if armor.IsArmored(in) {
		if in, err = armor.Decode(in); err != nil {
			return err
		}
	}

	// Decrypt the envelope, verifying it first if it is signed.
	opts := e.options(cmd.Legacy)

	var (
		plaintext []byte
		sender    seal.PublicKey
		verified  bool
	)

	if isSigned(in) {
		signed, err := seal.DecodeSignedEnvelope(in)
		if err != nil {
			return err
		}

		plaintext, err = seal.DecryptAndVerify(pk, signed, opts...)
		if err != nil {
			return err
		}

		sender, verified = signed.Signer, true
	} else {
		envelope, err := seal.DecodeEnvelope(in)
		if err != nil {
			return err
		}

		plaintext, err = pk.Decrypt(envelope, opts...)
		if err != nil {
			return err
		}

		sender = envelope.Sender
	}

	defer wipe(plaintext)

	e.log.Debug("decrypted message", "sender", sender.String(), "signed", verified, "size", len(plaintext))

	// Write out the plaintext.
	dst, err := e.openOutput(cmd.Plaintext)
	if err != nil {
		return err
	}

	if _, err := dst.Write(plaintext); err != nil {
		_ = dst.Close()

		return err
	}

	// Print the sender.
	if verified {
		_, _ = fmt.Fprintf(e.stderr, "Message signed and encrypted by %s\n", sender)
	} else {
		_, _ = fmt.Fprintf(e.stderr, "Message encrypted by %s\n", sender)
	}

	return dst.Close()
}

// isSigned reports whether the JSON object in b is a signed envelope.
func isSigned(b []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return false
	}

	_, ok := fields["encrypted_data"]

	return ok
}
