package seal

import "errors"

var (
	// ErrInvalidKey is returned when key material is malformed, has the wrong length, or is not a
	// valid curve point.
	ErrInvalidKey = errors.New("invalid key")

	// ErrEncryptionFailed is returned when a message cannot be encrypted.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned when a message cannot be decrypted, either due to an
	// incorrect key or tampering. It is the same error regardless of which.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrSerialization is returned when an envelope or auth message cannot be decoded.
	ErrSerialization = errors.New("serialization error")

	// ErrInvalidSignature is returned when a signature, public key, and message do not match.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Kind classifies an Error.
type Kind int

const (
	KindInvalidKey       Kind = iota + 1 // KindInvalidKey matches ErrInvalidKey.
	KindEncryptionFailed                 // KindEncryptionFailed matches ErrEncryptionFailed.
	KindDecryptionFailed                 // KindDecryptionFailed matches ErrDecryptionFailed.
	KindSerialization                    // KindSerialization matches ErrSerialization.
	KindInvalidSignature                 // KindInvalidSignature matches ErrInvalidSignature.
)

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidKey:
		return ErrInvalidKey
	case KindEncryptionFailed:
		return ErrEncryptionFailed
	case KindDecryptionFailed:
		return ErrDecryptionFailed
	case KindSerialization:
		return ErrSerialization
	case KindInvalidSignature:
		return ErrInvalidSignature
	default:
		return errors.New("unknown error")
	}
}

// String returns the description of the sentinel error the kind matches.
func (k Kind) String() string {
	return k.sentinel().Error()
}

// Error is returned by every operation in this package. Use errors.Is with the package's sentinel
// errors to classify it.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	s := e.Kind.String()

	if e.Reason != "" {
		s += ": " + e.Reason
	}

	if e.Err != nil {
		s += ": " + e.Err.Error()
	}

	return s
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for the receiver's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func invalidKey(reason string, err error) error {
	return &Error{Kind: KindInvalidKey, Reason: reason, Err: err}
}

func serializationError(reason string, err error) error {
	return &Error{Kind: KindSerialization, Reason: reason, Err: err}
}

// errDecryption never wraps an underlying cause.
func errDecryption(reason string) error {
	return &Error{Kind: KindDecryptionFailed, Reason: reason}
}

func errSignature(reason string) error {
	return &Error{Kind: KindInvalidSignature, Reason: reason}
}

// annotate prefixes the reason of an *Error with the name of the value it concerns.
func annotate(err error, name string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}

	c := *e
	if c.Reason == "" {
		c.Reason = name
	} else {
		c.Reason = name + ": " + c.Reason
	}

	return &c
}
