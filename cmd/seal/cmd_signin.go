package main

import (
	"crypto/rand"
	"encoding/json"

	"github.com/alecthomas/kong"
	"github.com/mr-tron/base58"
	"github.com/walletseal/seal/pkg/seal"
)

// signInRequest is the signed sign-in message handed to the verifying party.
type signInRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Wallet    string `json:"wallet"`
}

type signInCmd struct {
	PrivateKey string `arg:"" help:"The path to the wallet's private key, or - to enter it."`
	Output     string `arg:"" type:"path" default:"-" help:"The output path for the signed message."`

	Domain    string `help:"The domain requesting the sign-in."`
	Statement string `help:"The statement to sign."`
	Nonce     string `help:"The nonce issued by the domain. A random one is used if empty."`
}

func (cmd *signInCmd) Run(_ *kong.Context, e *env) error {
	// Read the wallet's private key.
	pk, err := e.readPrivateKey(cmd.PrivateKey)
	if err != nil {
		return err
	}

	// Fill in the message from the configuration.
	domain, statement, nonce := cmd.Domain, cmd.Statement, cmd.Nonce
	if domain == "" {
		domain = e.cfg.Domain
	}

	if statement == "" {
		statement = e.cfg.Statement
	}

	if nonce == "" {
		if nonce, err = seal.NewAuthNonce(rand.Reader); err != nil {
			return err
		}
	}

	if err := seal.ValidateAuthFields(domain, nonce); err != nil {
		return err
	}

	// Create and sign the message.
	wallet := pk.PublicKey()
	message := seal.CreateAuthMessage(wallet, domain, statement, nonce)
	sig := seal.SignAuthMessage(pk, message)

	e.log.Debug("signed sign-in message", "wallet", wallet.String(), "domain", domain)

	// Write out the signed message.
	dst, err := e.openOutput(cmd.Output)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")

	if err := enc.Encode(signInRequest{
		Message:   message,
		Signature: base58.Encode(sig),
		Wallet:    wallet.String(),
	}); err != nil {
		_ = dst.Close()

		return err
	}

	return dst.Close()
}
