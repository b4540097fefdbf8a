package seal

import (
	"github.com/walletseal/seal/pkg/seal/internal/aead"
	"github.com/walletseal/seal/pkg/seal/internal/xdh"
)

// Encrypt encrypts plaintext such that only the holder of recipient's private key can decrypt it,
// knowing it was encrypted by the receiver.
func (pk *PrivateKey) Encrypt(recipient PublicKey, plaintext []byte, opts ...Option) (*Envelope, error) {
	o := newOptions(opts)
	conv := o.converter()
	sender := pk.PublicKey()

	// Convert the recipient's public key to an X25519 public key.
	qR, err := conv.Public((*[PublicKeySize]byte)(&recipient))
	if err != nil {
		return nil, invalidKey("recipient public key is not a valid curve point", nil)
	}

	// Convert the sender's seed to an X25519 private key.
	dS := conv.Private(&pk.seed)
	defer wipe(dS[:])

	// Calculate the shared secret.
	zz, err := xdh.Agree(&dS, &qR)
	if err != nil {
		return nil, invalidKey("recipient public key has low order", nil)
	}

	defer wipe(zz[:])

	// Encrypt the plaintext with a fresh nonce.
	nonce, ciphertext, err := aead.Seal(o.rand, zz[:], plaintext, o.associatedData(&sender))
	if err != nil {
		return nil, &Error{Kind: KindEncryptionFailed, Reason: "unable to seal message", Err: err}
	}

	return NewEnvelope(nonce, ciphertext, sender)
}

// Decrypt decrypts the envelope using the receiver and the sender's public key carried in the
// envelope, returning the plaintext. If any bit of the envelope has been altered, or if it was not
// encrypted for the receiver, returns an error matching ErrDecryptionFailed.
func (pk *PrivateKey) Decrypt(env *Envelope, opts ...Option) ([]byte, error) {
	if env == nil {
		return nil, serializationError("missing envelope", nil)
	}

	o := newOptions(opts)
	conv := o.converter()

	// Convert the sender's public key to an X25519 public key. An invalid point here means the
	// envelope was altered, so it is reported like any other authentication failure.
	qS, err := conv.Public((*[PublicKeySize]byte)(&env.Sender))
	if err != nil {
		return nil, errDecryption(decryptionReason)
	}

	// Convert the recipient's seed to an X25519 private key.
	dR := conv.Private(&pk.seed)
	defer wipe(dR[:])

	// Calculate the shared secret.
	zz, err := xdh.Agree(&dR, &qS)
	if err != nil {
		return nil, errDecryption(decryptionReason)
	}

	defer wipe(zz[:])

	// Authenticate and decrypt the ciphertext.
	plaintext, err := aead.Open(zz[:], env.Nonce[:], env.Ciphertext, o.associatedData(&env.Sender))
	if err != nil {
		return nil, errDecryption(decryptionReason)
	}

	return plaintext, nil
}

const decryptionReason = "message authentication failed"

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
