// Package seal encrypts messages between holders of Ed25519 wallet keys.
//
// A sender's signing key and a recipient's public key are converted to X25519 keys, a shared
// secret is agreed via Diffie-Hellman, and the message is encrypted with ChaCha20-Poly1305 under
// a random 96-bit nonce. The result is an Envelope carrying the nonce, the ciphertext, and the
// sender's public key. A SignedEnvelope additionally carries the sender's Ed25519 signature of the
// envelope, so its origin can be checked without decrypting it. Sign-in messages let a wallet
// holder prove control of a key without any encryption.
//
// Envelopes carry no sequence numbers or timestamps; replay handling is left to the caller.
package seal

import "unicode/utf8"

// EncryptForRecipient encrypts message for the holder of recipientPublicKey. All keys are base58
// text; senderPublicKey must be the public key of senderPrivateKey.
func EncryptForRecipient(
	message, recipientPublicKey, senderPrivateKey, senderPublicKey string, opts ...Option,
) (*Envelope, error) {
	// Decode and validate the keys.
	recipient, err := ParsePublicKey(recipientPublicKey)
	if err != nil {
		return nil, annotate(err, "recipient public key")
	}

	sk, err := ParsePrivateKey(senderPrivateKey)
	if err != nil {
		return nil, annotate(err, "sender private key")
	}

	sender, err := ParsePublicKey(senderPublicKey)
	if err != nil {
		return nil, annotate(err, "sender public key")
	}

	// Refuse to produce an envelope whose sender could never be decrypted against.
	if sk.PublicKey() != sender {
		return nil, invalidKey("sender public key does not match sender private key", nil)
	}

	return sk.Encrypt(recipient, []byte(message), opts...)
}

// DecryptFromSender decrypts env with the base58 recipientPrivateKey and returns the message.
func DecryptFromSender(env *Envelope, recipientPrivateKey string, opts ...Option) (string, error) {
	sk, err := ParsePrivateKey(recipientPrivateKey)
	if err != nil {
		return "", annotate(err, "recipient private key")
	}

	plaintext, err := sk.Decrypt(env, opts...)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", errDecryption("message is not valid UTF-8")
	}

	return string(plaintext), nil
}
