package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/walletseal/seal/pkg/seal"
)

type validateCmd struct {
	Keys []string `arg:"" help:"The base58 keys to check."`

	Private bool `help:"Check the keys as private keys instead of public keys."`
}

func (cmd *validateCmd) Run(_ *kong.Context, e *env) error {
	validate := seal.ValidatePublicKey
	if cmd.Private {
		validate = seal.ValidatePrivateKey
	}

	invalid := 0

	for i, key := range cmd.Keys {
		// Private keys are never echoed back.
		name := key
		if cmd.Private {
			name = fmt.Sprintf("key %d", i+1)
		}

		if err := validate(key); err != nil {
			invalid++

			_, _ = fmt.Fprintf(e.stdout, "%s: %v\n", name, err)

			continue
		}

		_, _ = fmt.Fprintf(e.stdout, "%s: ok\n", name)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d keys are invalid", invalid, len(cmd.Keys))
	}

	return nil
}
