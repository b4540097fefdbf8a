// Package armor encodes envelopes as ASCII text which survives copying through chat, email, and
// other text-based systems.
//
// An armored message is standard base64 wrapped at 64 characters, between a header and footer
// line.
package armor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"

	"github.com/emersion/go-textwrapper"
)

const (
	header    = "-----BEGIN SEAL MESSAGE-----\n\n"
	footer    = "\n-----END SEAL MESSAGE-----\n"
	lineWidth = 64
)

// ErrNotArmored is returned when decoding data which lacks the armor header or footer.
var ErrNotArmored = errors.New("armor: missing header or footer")

// NewEncoder writes the armor header to dst and returns an io.WriteCloser which will armor data
// before writing it to dst. Close writes the footer.
func NewEncoder(dst io.Writer) (io.WriteCloser, error) {
	if _, err := io.WriteString(dst, header); err != nil {
		return nil, err
	}

	return &encoder{
		dst: dst,
		enc: base64.NewEncoder(base64.StdEncoding, textwrapper.New(dst, "\n", lineWidth)),
	}, nil
}

type encoder struct {
	dst io.Writer
	enc io.WriteCloser
}

func (e *encoder) Write(p []byte) (int, error) {
	return e.enc.Write(p)
}

func (e *encoder) Close() error {
	if err := e.enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(e.dst, footer)

	return err
}

// Encode returns the armored form of data.
func Encode(data []byte) []byte {
	buf := bytes.NewBuffer(nil)

	// Writes to a bytes.Buffer never fail.
	enc, _ := NewEncoder(buf)
	_, _ = enc.Write(data)
	_ = enc.Close()

	return buf.Bytes()
}

// IsArmored reports whether data begins with the armor header, ignoring leading whitespace.
func IsArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(header[:len(header)-2]))
}

// Decode returns the data inside an armored message. Line breaks and surrounding whitespace are
// ignored.
func Decode(armored []byte) ([]byte, error) {
	s := bytes.TrimSpace(armored)

	begin, end := []byte(header[:len(header)-2]), []byte(footer[1:len(footer)-1])
	if !bytes.HasPrefix(s, begin) || !bytes.HasSuffix(s, end) || len(s) < len(begin)+len(end) {
		return nil, ErrNotArmored
	}

	body := bytes.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		default:
			return r
		}
	}, s[len(begin):len(s)-len(end)])

	out := make([]byte, base64.StdEncoding.DecodedLen(len(body)))

	n, err := base64.StdEncoding.Decode(out, body)
	if err != nil {
		return nil, err
	}

	return out[:n], nil
}
