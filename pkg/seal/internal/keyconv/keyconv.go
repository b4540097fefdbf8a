// Package keyconv maps Ed25519 signing keys onto X25519 key-exchange keys.
//
// Two mappings are provided. Birational applies the Edwards-to-Montgomery map u = (1+y)/(1-y) to
// the public point and uses the Ed25519 secret scalar as the X25519 private key, so that
// X25519(Private(seed), basepoint) == Public(pub) for every Ed25519 keypair. Legacy reproduces an
// older byte-level shortcut which hashes the seed with SHA-256 and clears the top bit of the public
// key; it does not preserve that relationship and two distinct parties using it will not agree on
// a shared secret.
package keyconv

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"

	"filippo.io/edwards25519"
)

// KeySize is the size of seeds, public keys, and exchange keys in bytes.
const KeySize = 32

// ErrInvalidPoint is returned when a public key is not the encoding of an edwards25519 point.
var ErrInvalidPoint = errors.New("keyconv: invalid edwards25519 point")

// Converter maps signing keys to exchange keys.
type Converter interface {
	// Private returns the X25519 private key for the given Ed25519 seed.
	Private(seed *[KeySize]byte) [KeySize]byte

	// Public returns the X25519 public key for the given Ed25519 public key.
	Public(pub *[KeySize]byte) ([KeySize]byte, error)
}

var (
	// Birational is the standard Ed25519 to X25519 conversion.
	Birational Converter = birational{}

	// Legacy is the non-birational shortcut. It is kept for reading envelopes produced by older
	// clients and must not be relied upon for confidentiality between distinct parties.
	Legacy Converter = legacy{}
)

type birational struct{}

func (birational) Private(seed *[KeySize]byte) [KeySize]byte {
	var out [KeySize]byte

	// The Ed25519 secret scalar is the clamped lower half of SHA-512(seed). X25519 clamps its
	// input, so the unclamped half is used as is.
	h := sha512.Sum512(seed[:])
	copy(out[:], h[:KeySize])

	for i := range h {
		h[i] = 0
	}

	return out
}

func (birational) Public(pub *[KeySize]byte) ([KeySize]byte, error) {
	var out [KeySize]byte

	p, err := new(edwards25519.Point).SetBytes(pub[:])
	if err != nil {
		return out, ErrInvalidPoint
	}

	copy(out[:], p.BytesMontgomery())

	return out, nil
}

type legacy struct{}

func (legacy) Private(seed *[KeySize]byte) [KeySize]byte {
	return sha256.Sum256(seed[:])
}

func (legacy) Public(pub *[KeySize]byte) ([KeySize]byte, error) {
	out := *pub

	// Drop the sign bit of the x-coordinate, leaving the y-coordinate bytes.
	out[KeySize-1] &= 0x7f

	return out, nil
}
