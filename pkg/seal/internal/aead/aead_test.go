package aead

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{0x42}, KeySize)
	message := []byte("this is a real message")

	nonce, ciphertext, err := Seal(rand.Reader, key, message, []byte("ad"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "nonce size", NonceSize, len(nonce))
	assert.Equal(t, "ciphertext size", len(message)+Overhead, len(ciphertext))

	plaintext, err := Open(key, nonce, ciphertext, []byte("ad"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "plaintext", message, plaintext)
}

func TestRoundTrip_Empty(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{0x42}, KeySize)

	nonce, ciphertext, err := Seal(rand.Reader, key, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "ciphertext size", Overhead, len(ciphertext))

	plaintext, err := Open(key, nonce, ciphertext, nil)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "plaintext size", 0, len(plaintext))
}

func TestOpen_Tampering(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{0x42}, KeySize)
	ad := []byte("ad")

	nonce, ciphertext, err := Seal(rand.Reader, key, []byte("this is a real message"), ad)
	if err != nil {
		t.Fatal(err)
	}

	flip := func(b []byte, i int) []byte {
		c := append([]byte(nil), b...)
		c[i/8] ^= 1 << (i % 8)

		return c
	}

	for i := 0; i < len(nonce)*8; i++ {
		_, err := Open(key, flip(nonce, i), ciphertext, ad)
		assert.Equal(t, "nonce error", ErrOpen, err, cmpopts.EquateErrors())
	}

	for i := 0; i < len(ciphertext)*8; i++ {
		_, err := Open(key, nonce, flip(ciphertext, i), ad)
		assert.Equal(t, "ciphertext error", ErrOpen, err, cmpopts.EquateErrors())
	}

	for i := 0; i < len(ad)*8; i++ {
		_, err := Open(key, nonce, ciphertext, flip(ad, i))
		assert.Equal(t, "ad error", ErrOpen, err, cmpopts.EquateErrors())
	}

	_, err = Open(flip(key, 0), nonce, ciphertext, ad)
	assert.Equal(t, "key error", ErrOpen, err, cmpopts.EquateErrors())
}

func TestOpen_Malformed(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{0x42}, KeySize)

	_, err := Open(key, make([]byte, NonceSize-1), make([]byte, Overhead), nil)
	assert.Equal(t, "short nonce", ErrOpen, err, cmpopts.EquateErrors())

	_, err = Open(key, make([]byte, NonceSize+1), make([]byte, Overhead), nil)
	assert.Equal(t, "long nonce", ErrOpen, err, cmpopts.EquateErrors())

	_, err = Open(key, make([]byte, NonceSize), make([]byte, Overhead-1), nil)
	assert.Equal(t, "short ciphertext", ErrOpen, err, cmpopts.EquateErrors())

	_, err = Open(key[:KeySize-1], make([]byte, NonceSize), make([]byte, Overhead), nil)
	assert.Equal(t, "short key", ErrOpen, err, cmpopts.EquateErrors())
}

func TestSeal_NonceFreshness(t *testing.T) {
	t.Parallel()

	key := bytes.Repeat([]byte{0x42}, KeySize)
	seen := make(map[string]struct{}, 10_000)

	for i := 0; i < 10_000; i++ {
		nonce, _, err := Seal(rand.Reader, key, []byte("hello"), nil)
		if err != nil {
			t.Fatal(err)
		}

		if _, ok := seen[string(nonce)]; ok {
			t.Fatalf("nonce reused after %d calls", i)
		}

		seen[string(nonce)] = struct{}{}
	}
}

func TestSeal_RandFailure(t *testing.T) {
	t.Parallel()

	errRand := errors.New("no entropy")
	key := bytes.Repeat([]byte{0x42}, KeySize)

	_, _, err := Seal(iotest.ErrReader(errRand), key, []byte("hello"), nil)

	assert.Equal(t, "error", errRand, err, cmpopts.EquateErrors())
}
