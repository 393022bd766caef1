// Package hex formats digest values as fixed width hexadecimal strings and
// bytes.
package hex

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/multiformats/go-multibase"
)

// ToHex formats value as lowercase hex, zero padded to bitLength/4 digits.
func ToHex(value *big.Int, bitLength int) string {
	return fmt.Sprintf("%0*x", bitLength/4, value)
}

// ToBytes decodes consecutive 2 character hex groups.
func ToBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding hex digest: %w", err)
	}
	return b, nil
}

// ToDigest returns the big-endian bytes of value, zero padded to bitLength
// bits. The result is the same as ToBytes(ToHex(value, bitLength)) without
// the round trip through text.
func ToDigest(value *big.Int, bitLength int) []byte {
	return value.FillBytes(make([]byte, bitLength/8))
}

// Multibase encodes the digest bytes of value with the given multibase
// encoding.
func Multibase(value *big.Int, bitLength int, encoding multibase.Encoding) (string, error) {
	s, err := multibase.Encode(encoding, ToDigest(value, bitLength))
	if err != nil {
		return "", fmt.Errorf("encoding digest: %w", err)
	}
	return s, nil
}
