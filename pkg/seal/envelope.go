package seal

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/walletseal/seal/pkg/seal/internal/aead"
)

const (
	NonceSize = aead.NonceSize // NonceSize is the size of an envelope's nonce in bytes.
	Overhead  = aead.Overhead  // Overhead is the number of bytes added to each plaintext.
)

// Envelope is an encrypted message, along with the nonce it was encrypted with and the public key
// of its sender.
type Envelope struct {
	Nonce      [NonceSize]byte
	Ciphertext []byte
	Sender     PublicKey

	// Ephemeral is an optional 32-byte public key carried for compatibility. It is not used to
	// derive the shared secret.
	Ephemeral []byte
}

// NewEnvelope returns an envelope for the given nonce, ciphertext, and sender.
func NewEnvelope(nonce, ciphertext []byte, sender PublicKey) (*Envelope, error) {
	if len(nonce) != NonceSize {
		return nil, serializationError(fmt.Sprintf("nonce must be %d bytes, got %d", NonceSize, len(nonce)), nil)
	}

	if len(ciphertext) < Overhead {
		return nil, serializationError(fmt.Sprintf("ciphertext must be at least %d bytes", Overhead), nil)
	}

	env := &Envelope{
		Ciphertext: append([]byte(nil), ciphertext...),
		Sender:     sender,
	}
	copy(env.Nonce[:], nonce)

	return env, nil
}

// DecodeEnvelope decodes an envelope from its JSON form.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope

	if err := json.Unmarshal(data, &env); err != nil {
		return nil, asSerializationError("malformed envelope", err)
	}

	return &env, nil
}

// Encode returns the JSON form of the envelope.
func (env *Envelope) Encode() ([]byte, error) {
	return json.Marshal(env)
}

type envelopeJSON struct {
	Nonce              string `json:"nonce"`
	Encrypted          string `json:"encrypted"`
	SenderPublicKey    string `json:"sender_public_key"`
	EphemeralPublicKey string `json:"ephemeral_public_key,omitempty"`
}

// MarshalJSON encodes the nonce and ciphertext as base64 and the sender's public key as base58.
func (env Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopeJSON{
		Nonce:              base64.StdEncoding.EncodeToString(env.Nonce[:]),
		Encrypted:          base64.StdEncoding.EncodeToString(env.Ciphertext),
		SenderPublicKey:    base58.Encode(env.Sender[:]),
		EphemeralPublicKey: encodeOptional(env.Ephemeral),
	})
}

// UnmarshalJSON decodes the results of MarshalJSON and updates the receiver to contain the
// decoded envelope.
func (env *Envelope) UnmarshalJSON(data []byte) error {
	var raw envelopeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return serializationError("malformed envelope", err)
	}

	switch {
	case raw.Nonce == "":
		return serializationError("missing nonce", nil)
	case raw.Encrypted == "":
		return serializationError("missing encrypted", nil)
	case raw.SenderPublicKey == "":
		return serializationError("missing sender_public_key", nil)
	}

	nonce, err := base64.StdEncoding.DecodeString(raw.Nonce)
	if err != nil {
		return serializationError("invalid nonce", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(raw.Encrypted)
	if err != nil {
		return serializationError("invalid encrypted", err)
	}

	// The sender's key is only checked for length here. Whether it is a valid point is decided
	// during decryption, which fails uniformly for any altered envelope.
	sender, err := base58.Decode(raw.SenderPublicKey)
	if err != nil {
		return serializationError("invalid sender_public_key", err)
	}

	if len(sender) != PublicKeySize {
		return serializationError(fmt.Sprintf("sender_public_key must be %d bytes, got %d", PublicKeySize, len(sender)), nil)
	}

	var ephemeral []byte
	if raw.EphemeralPublicKey != "" {
		ephemeral, err = base64.StdEncoding.DecodeString(raw.EphemeralPublicKey)
		if err != nil {
			return serializationError("invalid ephemeral_public_key", err)
		}

		if len(ephemeral) != PublicKeySize {
			return serializationError(fmt.Sprintf("ephemeral_public_key must be %d bytes, got %d", PublicKeySize, len(ephemeral)), nil)
		}
	}

	var pk PublicKey

	copy(pk[:], sender)

	decoded, err := NewEnvelope(nonce, ciphertext, pk)
	if err != nil {
		return err
	}

	decoded.Ephemeral = ephemeral
	*env = *decoded

	return nil
}

var (
	_ json.Marshaler   = Envelope{}
	_ json.Unmarshaler = &Envelope{}
)

func encodeOptional(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return base64.StdEncoding.EncodeToString(b)
}

// asSerializationError passes through errors from this package and wraps anything else, such as a
// JSON syntax error, as a serialization error.
func asSerializationError(reason string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	return serializationError(reason, err)
}
