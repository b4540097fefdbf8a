package seal

import (
	"crypto/rand"
	"io"

	"github.com/walletseal/seal/pkg/seal/internal/keyconv"
)

// Option configures an encryption or decryption operation.
type Option func(*options)

// WithRand sets the source of randomness used for nonces. The default is crypto/rand.Reader.
func WithRand(r io.Reader) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithLegacyKeyConversion selects the SHA-256 and sign-bit-clearing key conversion used by older
// clients, and disables binding the sender's public key to the ciphertext.
//
// Legacy conversion is not a birational map. Two distinct parties using it derive different shared
// secrets, so it only decrypts envelopes a key holder encrypted to itself. Use it to read old
// envelopes, never to write new ones for someone else.
func WithLegacyKeyConversion() Option {
	return func(o *options) {
		o.legacy = true
	}
}

type options struct {
	rand   io.Reader
	legacy bool
}

func newOptions(opts []Option) *options {
	o := &options{rand: rand.Reader}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *options) converter() keyconv.Converter {
	if o.legacy {
		return keyconv.Legacy
	}

	return keyconv.Birational
}

// associatedData returns the data authenticated alongside each ciphertext: the sender's public key,
// so that every bit of it is covered by the tag, including the sign bit the Montgomery form drops.
func (o *options) associatedData(sender *PublicKey) []byte {
	if o.legacy {
		return nil
	}

	return sender[:]
}
