// Package aead seals and opens messages with ChaCha20-Poly1305 under randomly generated 96-bit
// nonces.
package aead

import (
	"errors"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	KeySize   = chacha20poly1305.KeySize   // KeySize is the size of a key in bytes.
	NonceSize = chacha20poly1305.NonceSize // NonceSize is the size of a nonce in bytes.
	Overhead  = chacha20poly1305.Overhead  // Overhead is the size of the authentication tag in bytes.
)

// ErrOpen is returned when a ciphertext cannot be opened. It does not distinguish a wrong key from
// a modified nonce, ciphertext, or associated data.
var ErrOpen = errors.New("aead: message authentication failed")

// Seal encrypts and authenticates plaintext and ad with key, returning a fresh nonce read from rand
// and the ciphertext with the authentication tag appended.
func Seal(rand io.Reader, key, plaintext, ad []byte) (nonce, ciphertext []byte, err error) {
	c, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, err
	}

	// Every call draws a new nonce; a key is never used twice with the same one.
	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand, nonce); err != nil {
		return nil, nil, err
	}

	return nonce, c.Seal(nil, nonce, plaintext, ad), nil
}

// Open authenticates and decrypts ciphertext with key, nonce, and ad.
func Open(key, nonce, ciphertext, ad []byte) ([]byte, error) {
	if len(nonce) != NonceSize || len(ciphertext) < Overhead {
		return nil, ErrOpen
	}

	c, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, ErrOpen
	}

	plaintext, err := c.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, ErrOpen
	}

	return plaintext, nil
}
