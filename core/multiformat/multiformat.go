// Package multiformat prefixes byte strings with a varint code identifying
// their format.
package multiformat

import (
	"github.com/multiformats/go-varint"
	"github.com/storacha/go-toyhash/core/failure"
)

const (
	ErrMalformedTag  failure.Kind = "MalformedTag"
	ErrUnexpectedTag failure.Kind = "UnexpectedTag"
)

// TagWith returns payload prefixed with the varint encoding of code.
func TagWith(code uint64, payload []byte) []byte {
	size := varint.UvarintSize(code)
	tagged := make([]byte, size+len(payload))
	varint.PutUvarint(tagged, code)
	copy(tagged[size:], payload)
	return tagged
}

// UntagWith reads the tag starting at offset in source and returns the
// payload that follows it. The tag must be code.
func UntagWith(code uint64, source []byte, offset int) ([]byte, error) {
	if offset < 0 || offset > len(source) {
		return nil, failure.New(ErrMalformedTag, "offset %d out of range for %d bytes", offset, len(source))
	}
	b := source[offset:]

	tag, size, err := varint.FromUvarint(b)
	if err != nil {
		return nil, failure.Wrap(ErrMalformedTag, err, "reading multiformat tag")
	}
	if tag != code {
		return nil, failure.New(ErrUnexpectedTag, "expected multiformat with 0x%x tag instead got 0x%x", code, tag)
	}
	return b[size:], nil
}
