package armor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/codahale/gubbins/assert"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var armored = strings.Join([]string{
	"-----BEGIN SEAL MESSAGE-----",
	"",
	"aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQg",
	"aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQg",
	"aGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQgaGVsbG8gd29ybGQg",
	"-----END SEAL MESSAGE-----",
	"",
}, "\n")

func TestNewEncoder(t *testing.T) {
	t.Parallel()

	dst := bytes.NewBuffer(nil)

	enc, err := NewEncoder(dst)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := enc.Write(bytes.Repeat([]byte("hello world "), 12)); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "armored output", armored, dst.String())
}

func TestEncode_Padding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "armored output",
		"-----BEGIN SEAL MESSAGE-----\n\naGk=\n-----END SEAL MESSAGE-----\n",
		string(Encode([]byte("hi"))))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	data, err := Decode([]byte(armored))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "de-armored output", strings.Repeat("hello world ", 12), string(data))
}

func TestDecode_Whitespace(t *testing.T) {
	t.Parallel()

	data, err := Decode([]byte("\r\n  " + strings.ReplaceAll(armored, "\n", "\r\n") + "\n\n"))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "de-armored output", strings.Repeat("hello world ", 12), string(data))
}

func TestDecode_NotArmored(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"",
		`{"nonce":"AA=="}`,
		"-----BEGIN SEAL MESSAGE-----\n\naGk=\n",
		"-----BEGIN SEAL MESSAGE-----",
	} {
		_, err := Decode([]byte(s))
		assert.Equal(t, s, ErrNotArmored, err, cmpopts.EquateErrors())
	}
}

func TestDecode_BadBase64(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("-----BEGIN SEAL MESSAGE-----\n\n!!!!\n-----END SEAL MESSAGE-----\n"))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestIsArmored(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "armored", true, IsArmored([]byte("\n"+armored)))
	assert.Equal(t, "json", false, IsArmored([]byte(`{"nonce":"AA=="}`)))
}
