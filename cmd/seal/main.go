package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/walletseal/seal/internal/config"
	"github.com/walletseal/seal/internal/logging"
	"github.com/walletseal/seal/pkg/seal"
	"golang.org/x/term"
)

type cli struct {
	Config    string `type:"path" help:"The path to a YAML file of defaults."`
	Verbose   bool   `short:"v" help:"Log debug output."`
	LogFormat string `help:"The log format (text or json)."`

	Keygen       keygenCmd       `cmd:"" help:"Generate a new keypair and its mnemonic."`
	Pubkey       pubkeyCmd       `cmd:"" help:"Print the public key of a private key."`
	Validate     validateCmd     `cmd:"" help:"Check that keys are well-formed."`
	Encrypt      encryptCmd      `cmd:"" help:"Encrypt a message for a recipient."`
	Decrypt      decryptCmd      `cmd:"" help:"Decrypt a message."`
	SignIn       signInCmd       `cmd:"" help:"Create and sign a sign-in message."`
	VerifySignIn verifySignInCmd `cmd:"" help:"Verify a signed sign-in message."`
}

// env is bound to every command's Run method.
type env struct {
	cfg    config.Config
	log    *slog.Logger
	stdin  io.Reader
	in     *bufio.Reader // buffers stdin across reads
	stdout io.Writer
	stderr io.Writer
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli, kong.Description("Encrypt messages between holders of Ed25519 wallet keys."))

	e, err := cli.env()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(e)
	ctx.FatalIfErrorf(err)
}

func (c *cli) env() (*env, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.LogFormat != "" {
		cfg.LogFormat = c.LogFormat
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, c.Verbose)
	if err != nil {
		return nil, err
	}

	return newEnv(cfg, logger, os.Stdin, os.Stdout, os.Stderr), nil
}

func newEnv(cfg config.Config, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) *env {
	return &env{
		cfg:    cfg,
		log:    logger,
		stdin:  stdin,
		in:     bufio.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
	}
}

// options returns the encryption options selected by the configuration and the command's flag.
func (e *env) options(legacy bool) []seal.Option {
	if legacy || e.cfg.LegacyKeyConversion {
		e.log.Warn("using legacy key conversion, which only round-trips envelopes encrypted to oneself")

		return []seal.Option{seal.WithLegacyKeyConversion()}
	}

	return nil
}

// readPrivateKey reads a private key from the file at path or, if path is "-", from the terminal.
func (e *env) readPrivateKey(path string) (*seal.PrivateKey, error) {
	var (
		b   []byte
		err error
	)

	if path == "-" {
		b, err = e.askSecret("Enter private key: ")
	} else {
		b, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, err
	}

	defer wipe(b)

	return decodePrivateKey(b)
}

// decodePrivateKey decodes base58 text or a JSON array of byte values, the format of solana-keygen
// keypair files.
func decodePrivateKey(b []byte) (*seal.PrivateKey, error) {
	b = bytes.TrimSpace(b)

	if !bytes.HasPrefix(b, []byte("[")) {
		var pk seal.PrivateKey
		if err := pk.UnmarshalText(b); err != nil {
			return nil, err
		}

		return &pk, nil
	}

	var values []int
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("invalid keypair file: %w", err)
	}

	raw := make([]byte, len(values))
	defer wipe(raw)

	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("invalid keypair file: byte %d out of range", i)
		}

		raw[i] = byte(v)
	}

	if len(raw) < seal.SeedSize {
		return nil, fmt.Errorf("invalid keypair file: %d bytes", len(raw))
	}

	pk, err := seal.NewPrivateKeyFromSeed(raw[:seal.SeedSize])
	if err != nil {
		return nil, err
	}

	// A keypair file carries the public key after the seed; it must be the seed's.
	if len(raw) >= seal.SeedSize+seal.PublicKeySize {
		pub := pk.PublicKey()
		if !bytes.Equal(raw[seal.SeedSize:seal.SeedSize+seal.PublicKeySize], pub[:]) {
			return nil, errors.New("invalid keypair file: public key does not match seed")
		}
	}

	return pk, nil
}

// decodePublicKey decodes a base58 public key given either directly or as the path of a file
// containing one.
func decodePublicKey(pathOrKey string) (seal.PublicKey, error) {
	// Try decoding the key directly.
	pk, err := seal.ParsePublicKey(pathOrKey)
	if err == nil {
		return pk, nil
	}

	// Otherwise, try reading the contents of it as a file.
	b, rerr := os.ReadFile(pathOrKey)
	if rerr != nil {
		return seal.PublicKey{}, err
	}

	return seal.ParsePublicKey(strings.TrimSpace(string(b)))
}

// askSecret reads a line from the terminal without echoing it, or from stdin if it is not a
// terminal.
func (e *env) askSecret(prompt string) ([]byte, error) {
	if f, ok := e.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		defer func() { _, _ = fmt.Fprintln(e.stderr) }()

		_, _ = fmt.Fprint(e.stderr, prompt)

		return term.ReadPassword(int(f.Fd()))
	}

	line, err := e.in.ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, err
	}

	return bytes.TrimRight(line, "\r\n"), nil
}

func (e *env) openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{e.stdout}, nil
	}

	return os.Create(path)
}

func (e *env) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(e.in)
	}

	return os.ReadFile(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
