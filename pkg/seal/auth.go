package seal

import (
	"crypto/subtle"
	"fmt"
	"io"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	authHeaderSuffix = " wants you to sign in with your Solana account:"
	authNoncePrefix  = "\n\nNonce: "
	authNonceSize    = 16
)

// AuthMessage is a human-readable sign-in statement which a wallet holder signs to prove control
// of their key.
type AuthMessage struct {
	Domain    string
	Wallet    PublicKey
	Statement string
	Nonce     string
}

// String returns the text of the message, which is what gets signed.
func (m *AuthMessage) String() string {
	return CreateAuthMessage(m.Wallet, m.Domain, m.Statement, m.Nonce)
}

// CreateAuthMessage returns the sign-in message for the given wallet, domain, statement, and
// nonce:
//
//	{domain} wants you to sign in with your Solana account:
//	{wallet}
//
//	{statement}
//
//	Nonce: {nonce}
//
// The domain and nonce must not contain line breaks, or ParseAuthMessage cannot recover them; use
// ValidateAuthFields to check values which did not come from NewAuthNonce.
func CreateAuthMessage(wallet PublicKey, domain, statement, nonce string) string {
	return fmt.Sprintf("%s%s\n%s\n\n%s%s%s", domain, authHeaderSuffix, wallet, statement, authNoncePrefix, nonce)
}

// SignAuthMessage returns the signature of message with the given private key.
func SignAuthMessage(pk *PrivateKey, message string) []byte {
	return pk.Sign([]byte(message))
}

// VerifyAuthSignature reports whether signature is wallet's signature of message.
func VerifyAuthSignature(message string, signature []byte, wallet PublicKey) bool {
	return wallet.Verify([]byte(message), signature)
}

// ParseAuthMessage parses the text of a sign-in message created by CreateAuthMessage.
func ParseAuthMessage(message string) (*AuthMessage, error) {
	header, rest, ok := strings.Cut(message, "\n")
	if !ok || !strings.HasSuffix(header, authHeaderSuffix) {
		return nil, serializationError("auth message is missing its header", nil)
	}

	wallet, rest, ok := strings.Cut(rest, "\n")
	if !ok {
		return nil, serializationError("auth message is missing its wallet", nil)
	}

	pk, err := ParsePublicKey(wallet)
	if err != nil {
		return nil, annotate(err, "auth message wallet")
	}

	i := strings.LastIndex(rest, authNoncePrefix)
	if !strings.HasPrefix(rest, "\n") || i < 1 {
		return nil, serializationError("auth message is missing its nonce", nil)
	}

	return &AuthMessage{
		Domain:    strings.TrimSuffix(header, authHeaderSuffix),
		Wallet:    pk,
		Statement: rest[1:i],
		Nonce:     rest[i+len(authNoncePrefix):],
	}, nil
}

// ValidateAuthFields returns an error matching ErrSerialization if domain is empty or if domain or
// nonce contains a line break, which would make the message created from them ambiguous.
func ValidateAuthFields(domain, nonce string) error {
	if domain == "" || strings.ContainsAny(domain, "\r\n") {
		return serializationError("auth message domain must be a single non-empty line", nil)
	}

	if strings.ContainsAny(nonce, "\r\n") {
		return serializationError("auth message nonce must be a single line", nil)
	}

	return nil
}

// NewAuthNonce returns a random base58 nonce for a sign-in message, reading entropy from rand.
func NewAuthNonce(rand io.Reader) (string, error) {
	b := make([]byte, authNonceSize)
	if _, err := io.ReadFull(rand, b); err != nil {
		return "", err
	}

	return base58.Encode(b), nil
}

// CheckAuthMessage verifies the signature of a sign-in message and that it was issued for the
// expected domain and nonce. It returns the parsed message.
func CheckAuthMessage(message string, signature []byte, domain, nonce string) (*AuthMessage, error) {
	m, err := ParseAuthMessage(message)
	if err != nil {
		return nil, err
	}

	if m.Domain != domain || subtle.ConstantTimeCompare([]byte(m.Nonce), []byte(nonce)) != 1 {
		return nil, errSignature("auth message was issued for another domain or nonce")
	}

	if !VerifyAuthSignature(message, signature, m.Wallet) {
		return nil, errSignature("")
	}

	return m, nil
}
