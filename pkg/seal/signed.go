package seal

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/walletseal/seal/pkg/seal/internal/canon"
)

// signedEnvelopeTag separates signatures of envelopes from signatures of anything else made with
// the same key, such as auth messages.
const signedEnvelopeTag = "seal.signed-envelope.v1"

// SignedEnvelope is an Envelope with a detached signature of it by its sender. The signature can
// be verified by anyone, without decrypting the envelope.
type SignedEnvelope struct {
	Envelope  Envelope
	Signature [SignatureSize]byte
	Signer    PublicKey
}

// EncryptAndSign encrypts plaintext for recipient with sender's key and signs the resulting
// envelope with the same key.
func EncryptAndSign(sender *PrivateKey, recipient PublicKey, plaintext []byte, opts ...Option) (*SignedEnvelope, error) {
	env, err := sender.Encrypt(recipient, plaintext, opts...)
	if err != nil {
		return nil, err
	}

	signed := &SignedEnvelope{Envelope: *env, Signer: sender.PublicKey()}
	copy(signed.Signature[:], sender.Sign(signed.message()))

	return signed, nil
}

// DecryptAndVerify verifies the signed envelope and, only if the signature is valid, decrypts it
// with recipient's key.
func DecryptAndVerify(recipient *PrivateKey, signed *SignedEnvelope, opts ...Option) ([]byte, error) {
	if signed == nil {
		return nil, serializationError("missing signed envelope", nil)
	}

	if err := signed.Verify(); err != nil {
		return nil, err
	}

	// Decrypt with the verified signer as the counterpart.
	env := signed.Envelope
	env.Sender = signed.Signer

	return recipient.Decrypt(&env, opts...)
}

// Verify returns nil if the signature is the signer's signature of the envelope and the signer is
// the envelope's sender, otherwise an error matching ErrInvalidSignature.
func (s *SignedEnvelope) Verify() error {
	if s.Envelope.Sender != s.Signer {
		return errSignature("signer is not the envelope's sender")
	}

	if !s.Signer.Verify(s.message(), s.Signature[:]) {
		return errSignature("")
	}

	return nil
}

// message returns the canonical encoding of the envelope which is signed.
func (s *SignedEnvelope) message() []byte {
	env := &s.Envelope

	return canon.Encode(signedEnvelopeTag, env.Nonce[:], env.Ciphertext, env.Sender[:], env.Ephemeral)
}

// DecodeSignedEnvelope decodes a signed envelope from its JSON form.
func DecodeSignedEnvelope(data []byte) (*SignedEnvelope, error) {
	var s SignedEnvelope

	if err := json.Unmarshal(data, &s); err != nil {
		return nil, asSerializationError("malformed signed envelope", err)
	}

	return &s, nil
}

// Encode returns the JSON form of the signed envelope.
func (s *SignedEnvelope) Encode() ([]byte, error) {
	return json.Marshal(s)
}

type signedEnvelopeJSON struct {
	EncryptedData   *Envelope `json:"encrypted_data"`
	Signature       string    `json:"signature"`
	SignerPublicKey string    `json:"signer_public_key"`
}

// MarshalJSON encodes the envelope as an object and the signature and signer as base64.
func (s SignedEnvelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(signedEnvelopeJSON{
		EncryptedData:   &s.Envelope,
		Signature:       base64.StdEncoding.EncodeToString(s.Signature[:]),
		SignerPublicKey: base64.StdEncoding.EncodeToString(s.Signer[:]),
	})
}

// UnmarshalJSON decodes the results of MarshalJSON and updates the receiver to contain the
// decoded signed envelope.
func (s *SignedEnvelope) UnmarshalJSON(data []byte) error {
	var raw signedEnvelopeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return asSerializationError("malformed signed envelope", err)
	}

	switch {
	case raw.EncryptedData == nil:
		return serializationError("missing encrypted_data", nil)
	case raw.Signature == "":
		return serializationError("missing signature", nil)
	case raw.SignerPublicKey == "":
		return serializationError("missing signer_public_key", nil)
	}

	sig, err := base64.StdEncoding.DecodeString(raw.Signature)
	if err != nil {
		return serializationError("invalid signature", err)
	}

	if len(sig) != SignatureSize {
		return serializationError(fmt.Sprintf("signature must be %d bytes, got %d", SignatureSize, len(sig)), nil)
	}

	signer, err := base64.StdEncoding.DecodeString(raw.SignerPublicKey)
	if err != nil {
		return serializationError("invalid signer_public_key", err)
	}

	if len(signer) != PublicKeySize {
		return serializationError(fmt.Sprintf("signer_public_key must be %d bytes, got %d", PublicKeySize, len(signer)), nil)
	}

	s.Envelope = *raw.EncryptedData
	copy(s.Signature[:], sig)
	copy(s.Signer[:], signer)

	return nil
}

var (
	_ json.Marshaler   = SignedEnvelope{}
	_ json.Unmarshaler = &SignedEnvelope{}
)
