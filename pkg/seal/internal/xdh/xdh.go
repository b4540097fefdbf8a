// Package xdh implements X25519 Diffie-Hellman key agreement.
package xdh

import (
	"errors"

	"golang.org/x/crypto/curve25519"
)

// SharedSecretSize is the size of a shared secret in bytes.
const SharedSecretSize = curve25519.PointSize

// ErrLowOrderPoint is returned when the counterpart's public key yields the all-zero shared secret.
var ErrLowOrderPoint = errors.New("xdh: low order point")

// Agree returns the shared secret between the private key priv and the counterpart's public key
// pub.
func Agree(priv, pub *[curve25519.ScalarSize]byte) ([SharedSecretSize]byte, error) {
	var zz [SharedSecretSize]byte

	out, err := curve25519.X25519(priv[:], pub[:])
	if err != nil {
		return zz, ErrLowOrderPoint
	}

	copy(zz[:], out)

	return zz, nil
}

// PublicKey returns the X25519 public key for the private key priv.
func PublicKey(priv *[curve25519.ScalarSize]byte) [curve25519.PointSize]byte {
	var q [curve25519.PointSize]byte

	// Multiplying the base point by any scalar never yields a low order result.
	out, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		panic(err)
	}

	copy(q[:], out)

	return q
}
