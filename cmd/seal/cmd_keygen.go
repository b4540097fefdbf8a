package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/walletseal/seal/pkg/seal"
)

type keygenCmd struct {
	Output string `arg:"" type:"path" help:"The output path for the private key."`

	Words      int  `default:"24" help:"The number of words in the mnemonic (12 or 24)."`
	Restore    bool `help:"Derive the keypair from an existing mnemonic instead of a new one."`
	Passphrase bool `help:"Ask for a BIP-39 passphrase."`
}

func (cmd *keygenCmd) Run(_ *kong.Context, e *env) error {
	// Generate or ask for the mnemonic.
	var (
		mnemonic string
		err      error
	)

	if cmd.Restore {
		var b []byte

		b, err = e.askSecret("Enter mnemonic: ")
		mnemonic = string(b)

		wipe(b)
	} else {
		if cmd.Words != 12 && cmd.Words != 24 {
			return fmt.Errorf("mnemonics must have 12 or 24 words, not %d", cmd.Words)
		}

		mnemonic, err = seal.NewMnemonic(cmd.Words / 3 * 32)
	}

	if err != nil {
		return err
	}

	// Ask for the passphrase, if requested.
	var passphrase string

	if cmd.Passphrase {
		b, err := e.askSecret("Enter passphrase: ")
		if err != nil {
			return err
		}

		passphrase = string(b)

		wipe(b)
	}

	// Derive the keypair.
	kp, err := seal.KeypairFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return err
	}

	// Write out the private key.
	text, err := kp.Private.MarshalText()
	if err != nil {
		return err
	}

	defer wipe(text)

	if err := os.WriteFile(cmd.Output, append(text, '\n'), 0o600); err != nil {
		return err
	}

	e.log.Debug("wrote private key", "path", cmd.Output, "wallet", kp.Public.String())

	// Print the mnemonic of a new keypair once, and its public key.
	if !cmd.Restore {
		_, _ = fmt.Fprintf(e.stderr, "Mnemonic (write this down): %s\n", mnemonic)
	}

	_, err = fmt.Fprintln(e.stdout, kp.Public)

	return err
}
