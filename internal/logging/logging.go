// Package logging builds the CLI's logger. Every handler it returns redacts attributes whose keys
// name secret material, so a stray key or mnemonic never reaches a log line.
//
// RedactingHandler follows the wrapping handler of ardents' privacylog package.
package logging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const redactedValue = "[REDACTED]"

var (
	sensitiveKeyParts = []string{"private_key", "secret", "mnemonic", "passphrase", "seed", "plaintext"}
	fingerprintKeys   = map[string]struct{}{
		"wallet":    {},
		"recipient": {},
		"sender":    {},
		"signer":    {},
	}
)

// New returns a logger writing to w in the given format ("text" or "json"). Debug records are
// only written when verbose is set.
func New(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var h slog.Handler

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return slog.New(WrapHandler(h)), nil
}

// RedactingHandler wraps another slog.Handler, redacting secret attributes and replacing public
// identifiers with short fingerprints.
type RedactingHandler struct {
	next slog.Handler
}

// WrapHandler returns next wrapped in a RedactingHandler.
func WrapHandler(next slog.Handler) slog.Handler {
	if next == nil {
		return nil
	}

	return &RedactingHandler{next: next}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(attr slog.Attr) bool {
		out.AddAttrs(RedactAttr(attr))

		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RedactingHandler{next: h.next.WithAttrs(redactAttrs(attrs))}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

// RedactAttr returns attr with its value redacted if its key names a secret, fingerprinted if its
// key names a public identifier, and unchanged otherwise. Groups are redacted recursively.
func RedactAttr(attr slog.Attr) slog.Attr {
	key := strings.TrimSpace(attr.Key)
	lowerKey := strings.ToLower(key)

	switch {
	case isSensitiveKey(lowerKey):
		return slog.String(key, redactedValue)
	case isFingerprintKey(lowerKey):
		return slog.String(key+"_fp", Fingerprint(attr.Value.String()))
	case attr.Value.Kind() == slog.KindGroup:
		return slog.Attr{Key: key, Value: slog.GroupValue(redactAttrs(attr.Value.Group())...)}
	default:
		return attr
	}
}

// Fingerprint returns a short, stable identifier for a public value such as a wallet address.
func Fingerprint(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(trimmed))

	return "fp_" + hex.EncodeToString(sum[:6])
}

func redactAttrs(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, RedactAttr(attr))
	}

	return out
}

func isSensitiveKey(key string) bool {
	for _, part := range sensitiveKeyParts {
		if strings.Contains(key, part) {
			return true
		}
	}

	return false
}

func isFingerprintKey(key string) bool {
	_, ok := fingerprintKeys[key]

	return ok
}
