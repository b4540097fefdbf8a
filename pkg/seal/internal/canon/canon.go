// Package canon provides an unambiguous byte encoding of a list of fields for signing.
//
// Each field, starting with a domain separation tag, is written as its length as a big-endian
// uint32 followed by its contents:
//
//	LEN(tag) || tag || LEN(f_0) || f_0 || ... || LEN(f_n) || f_n
//
// Unlike plain concatenation, moving bytes from one field to its neighbor always changes the
// encoding.
package canon

import "encoding/binary"

const lengthSize = 4

// Encode returns the canonical encoding of tag and fields.
func Encode(tag string, fields ...[]byte) []byte {
	n := lengthSize + len(tag)
	for _, f := range fields {
		n += lengthSize + len(f)
	}

	b := make([]byte, 0, n)
	b = appendField(b, []byte(tag))

	for _, f := range fields {
		b = appendField(b, f)
	}

	return b
}

func appendField(b, f []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(len(f)))

	return append(b, f...)
}
