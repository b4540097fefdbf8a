package seal

import (
	"bytes"
	"crypto/rand"
	"testing"

	"filippo.io/edwards25519"
	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mr-tron/base58"
)

func TestValidatePublicKey(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)

	if err := ValidatePublicKey(kp.Public.String()); err != nil {
		t.Fatal(err)
	}
}

func TestValidatePublicKey_NotBase58(t *testing.T) {
	t.Parallel()

	err := ValidatePublicKey("not-base58!!!")

	assert.Equal(t, "error", ErrInvalidKey, err, cmpopts.EquateErrors())
}

func TestValidatePublicKey_WrongLength(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 31, 33, 64} {
		err := ValidatePublicKey(base58.Encode(make([]byte, n)))

		assert.Equal(t, "error", ErrInvalidKey, err, cmpopts.EquateErrors())
	}
}

func TestValidatePublicKey_InvalidPoint(t *testing.T) {
	t.Parallel()

	err := ValidatePublicKey(base58.Encode(invalidPoint()))

	assert.Equal(t, "error", ErrInvalidKey, err, cmpopts.EquateErrors())
}

func TestValidatePrivateKey(t *testing.T) {
	t.Parallel()

	for _, n := range []int{32, 64, 80} {
		if err := ValidatePrivateKey(base58.Encode(bytes.Repeat([]byte{7}, n))); err != nil {
			t.Fatal(err)
		}
	}
}

func TestValidatePrivateKey_Short(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 16, 31} {
		err := ValidatePrivateKey(base58.Encode(make([]byte, n)))

		assert.Equal(t, "error", ErrInvalidKey, err, cmpopts.EquateErrors())
	}
}

func TestValidatePrivateKey_NotBase58(t *testing.T) {
	t.Parallel()

	err := ValidatePrivateKey("0OIl")

	assert.Equal(t, "error", ErrInvalidKey, err, cmpopts.EquateErrors())
}

func TestParse_ArbitraryInput(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 100)

	for i := 0; i < 1_000; i++ {
		n := i % len(buf)
		if _, err := rand.Read(buf[:n]); err != nil {
			t.Fatal(err)
		}

		text := base58.Encode(buf[:n])

		if _, err := ParsePublicKey(text); err != nil {
			assert.Equal(t, "public key error", ErrInvalidKey, err, cmpopts.EquateErrors())
		}

		if _, err := ParsePrivateKey(text); err != nil {
			assert.Equal(t, "private key error", ErrInvalidKey, err, cmpopts.EquateErrors())
		}

		if _, err := ParsePublicKey(string(buf[:n])); err != nil {
			assert.Equal(t, "raw public key error", ErrInvalidKey, err, cmpopts.EquateErrors())
		}
	}
}

func TestPublicKey_UnmarshalText(t *testing.T) {
	t.Parallel()

	// The all-zero key, y = 0, is a valid point.
	text := "11111111111111111111111111111111"

	pk, err := ParsePublicKey(text)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "decoded key", PublicKey{}, pk)
	assert.Equal(t, "round trip", text, pk.String())
}

func TestPublicKey_MarshalText(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)

	text, err := kp.Public.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	var pk PublicKey
	if err := pk.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", kp.Public, pk)
}

func TestPublicKey_MarshalBinary(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)

	b, err := kp.Public.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var pk PublicKey
	if err := pk.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "round trip", kp.Public, pk)

	err = pk.UnmarshalBinary(b[:31])
	assert.Equal(t, "short key", ErrInvalidKey, err, cmpopts.EquateErrors())
}

func TestPublicKey_Verify(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)
	message := []byte("ok there bud")
	sig := kp.Private.Sign(message)

	assert.Equal(t, "valid", true, kp.Public.Verify(message, sig))
	assert.Equal(t, "other message", false, kp.Public.Verify([]byte("ok there pal"), sig))
	assert.Equal(t, "short signature", false, kp.Public.Verify(message, sig[:SignatureSize-1]))
	assert.Equal(t, "other key", false, newTestKeypair(t).Public.Verify(message, sig))
}

func TestPrivateKey_MarshalText(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)

	text, err := kp.Private.MarshalText()
	if err != nil {
		t.Fatal(err)
	}

	raw, err := base58.Decode(string(text))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "exported size", SeedSize+PublicKeySize, len(raw))
	assert.Equal(t, "exported public key", kp.Public[:], raw[SeedSize:])

	pk, err := ParsePrivateKey(string(text))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "public key", kp.Public, pk.PublicKey())
}

func TestPrivateKey_ParseSeed(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)

	seed := kp.Private.seed
	pk, err := ParsePrivateKey(base58.Encode(seed[:]))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "public key", kp.Public, pk.PublicKey())
}

func TestPrivateKey_String(t *testing.T) {
	t.Parallel()

	kp := newTestKeypair(t)

	assert.Equal(t, "string representation", kp.Public.String(), kp.Private.String())
}

func TestNewPrivateKeyFromSeed_WrongLength(t *testing.T) {
	t.Parallel()

	_, err := NewPrivateKeyFromSeed(make([]byte, 31))

	assert.Equal(t, "error", ErrInvalidKey, err, cmpopts.EquateErrors())
}

func newTestKeypair(t *testing.T) *Keypair {
	t.Helper()

	kp, err := NewKeypair(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	return kp
}

// invalidPoint returns a 32-byte string which does not decode to a curve point.
func invalidPoint() []byte {
	b := make([]byte, PublicKeySize)

	for i := 2; i < 256; i++ {
		b[0] = byte(i)
		if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
			break
		}
	}

	return b
}
