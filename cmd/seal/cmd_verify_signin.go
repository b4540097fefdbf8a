package main

import (
	"encoding/json"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/mr-tron/base58"
	"github.com/walletseal/seal/pkg/seal"
)

type verifySignInCmd struct {
	Request string `arg:"" help:"The path to the signed sign-in message, or - for stdin."`

	Domain string `help:"The domain the message must be for."`
	Nonce  string `help:"The nonce the message must carry. Any nonce is accepted if empty."`
}

func (cmd *verifySignInCmd) Run(_ *kong.Context, e *env) error {
	// Read and decode the request.
	in, err := e.readInput(cmd.Request)
	if err != nil {
		return err
	}

	var req signInRequest
	if err := json.Unmarshal(in, &req); err != nil {
		return fmt.Errorf("invalid sign-in request: %w", err)
	}

	sig, err := base58.Decode(req.Signature)
	if err != nil {
		return fmt.Errorf("invalid sign-in signature: %w", err)
	}

	// Parse the message and check it was issued for this domain and nonce.
	m, err := seal.ParseAuthMessage(req.Message)
	if err != nil {
		return err
	}

	domain := cmd.Domain
	if domain == "" {
		domain = e.cfg.Domain
	}

	nonce := cmd.Nonce
	if nonce == "" {
		nonce = m.Nonce
	}

	if _, err := seal.CheckAuthMessage(req.Message, sig, domain, nonce); err != nil {
		return err
	}

	// The wallet field is informational; the signed message names the wallet which signed it.
	if req.Wallet != "" && req.Wallet != m.Wallet.String() {
		return fmt.Errorf("%w: wallet does not match message", seal.ErrInvalidSignature)
	}

	e.log.Debug("verified sign-in message", "wallet", m.Wallet.String(), "domain", m.Domain)

	_, err = fmt.Fprintf(e.stdout, "Signed in as %s\n", m.Wallet)

	return err
}
