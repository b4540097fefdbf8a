package seal

import (
	"crypto/ed25519"
	"encoding"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

const (
	PublicKeySize = ed25519.PublicKeySize // PublicKeySize is the size of a public key in bytes.
	SeedSize      = ed25519.SeedSize      // SeedSize is the size of a private key seed in bytes.
	SignatureSize = ed25519.SignatureSize // SignatureSize is the size of a signature in bytes.
)

// PublicKey is an Ed25519 public key, used to verify signatures and to encrypt messages.
//
// It can be marshalled and unmarshalled as a base58 string for human consumption.
type PublicKey [PublicKeySize]byte

// ParsePublicKey decodes a base58 public key, verifying that it is the encoding of a point on the
// curve.
func ParsePublicKey(text string) (PublicKey, error) {
	var pk PublicKey

	if err := pk.UnmarshalText([]byte(text)); err != nil {
		return PublicKey{}, err
	}

	return pk, nil
}

// ValidatePublicKey returns an error matching ErrInvalidKey if text is not a base58-encoded
// 32-byte curve point.
func ValidatePublicKey(text string) error {
	_, err := ParsePublicKey(text)

	return err
}

// Verify reports whether sig is the receiver's signature of message.
func (pk PublicKey) Verify(message, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}

	return ed25519.Verify(pk[:], message, sig)
}

// String returns the public key as base58 text.
func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// MarshalBinary returns the 32 bytes of the public key.
func (pk PublicKey) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), pk[:]...), nil
}

// UnmarshalBinary decodes the public key from a 32-byte slice.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	if len(data) != PublicKeySize {
		return invalidKey(fmt.Sprintf("public key must be %d bytes, got %d", PublicKeySize, len(data)), nil)
	}

	if _, err := new(edwards25519.Point).SetBytes(data); err != nil {
		return invalidKey("public key is not a valid curve point", nil)
	}

	copy(pk[:], data)

	return nil
}

// MarshalText encodes the public key into base58 text and returns the result.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText decodes the results of MarshalText and updates the receiver to contain the decoded
// public key.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	data, err := base58.Decode(string(text))
	if err != nil {
		return invalidKey("invalid base58", err)
	}

	return pk.UnmarshalBinary(data)
}

var (
	_ encoding.BinaryMarshaler   = PublicKey{}
	_ encoding.BinaryUnmarshaler = &PublicKey{}
	_ encoding.TextMarshaler     = PublicKey{}
	_ encoding.TextUnmarshaler   = &PublicKey{}
	_ fmt.Stringer               = PublicKey{}
)

// PrivateKey is an Ed25519 private key, used to sign, encrypt, and decrypt messages.
//
// Its text form is the base58 encoding of the 32-byte seed followed by the 32-byte public key, the
// format most wallets export. Any base58 string of at least 32 bytes is accepted when parsing; only
// the first 32 bytes are used.
type PrivateKey struct {
	seed [SeedSize]byte
}

// ParsePrivateKey decodes a base58 private key.
func ParsePrivateKey(text string) (*PrivateKey, error) {
	var pk PrivateKey

	if err := pk.UnmarshalText([]byte(text)); err != nil {
		return nil, err
	}

	return &pk, nil
}

// ValidatePrivateKey returns an error matching ErrInvalidKey if text is not base58 or decodes to
// fewer than 32 bytes.
func ValidatePrivateKey(text string) error {
	_, err := ParsePrivateKey(text)

	return err
}

// NewPrivateKeyFromSeed returns the private key for the given 32-byte seed.
func NewPrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, invalidKey(fmt.Sprintf("seed must be %d bytes, got %d", SeedSize, len(seed)), nil)
	}

	var pk PrivateKey

	copy(pk.seed[:], seed)

	return &pk, nil
}

// PublicKey returns the corresponding PublicKey for the receiver.
func (pk *PrivateKey) PublicKey() PublicKey {
	var pub PublicKey

	copy(pub[:], pk.signingKey().Public().(ed25519.PublicKey))

	return pub
}

// Sign returns the receiver's signature of message.
func (pk *PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(pk.signingKey(), message)
}

// String returns the corresponding public key as base58 text. The private key itself is never
// printed.
func (pk *PrivateKey) String() string {
	return pk.PublicKey().String()
}

// MarshalText encodes the seed and public key into base58 text and returns the result.
func (pk *PrivateKey) MarshalText() ([]byte, error) {
	return []byte(base58.Encode(pk.signingKey())), nil
}

// UnmarshalText decodes a base58 private key of at least 32 bytes and updates the receiver to
// contain its seed.
func (pk *PrivateKey) UnmarshalText(text []byte) error {
	data, err := base58.Decode(string(text))
	if err != nil {
		return invalidKey("invalid base58", err)
	}

	if len(data) < SeedSize {
		return invalidKey(fmt.Sprintf("private key must be at least %d bytes, got %d", SeedSize, len(data)), nil)
	}

	copy(pk.seed[:], data[:SeedSize])

	for i := range data {
		data[i] = 0
	}

	return nil
}

func (pk *PrivateKey) signingKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(pk.seed[:])
}

var (
	_ encoding.TextMarshaler   = &PrivateKey{}
	_ encoding.TextUnmarshaler = &PrivateKey{}
	_ fmt.Stringer             = &PrivateKey{}
)
