package helpers

import (
	crand "crypto/rand"
	"math/bits"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime/datamodel"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/multiformats/go-multihash"
)

// Must takes return values from a function and returns the non-error one. If
// the error value is non-nil then it panics.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func RandomBytes(size int) []byte {
	bytes := make([]byte, size)
	_, _ = crand.Read(bytes)
	return bytes
}

func RandomCID() datamodel.Link {
	bytes := RandomBytes(10)
	c, _ := cid.Prefix{
		Version:  1,
		Codec:    cid.Raw,
		MhType:   multihash.SHA2_256,
		MhLength: -1,
	}.Sum(bytes)
	return cidlink.Link{Cid: c}
}

// ChangeOneBit returns a copy of data with one pseudo-random bit inverted.
// The bit is chosen from the data itself so the result is deterministic.
func ChangeOneBit(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	if len(data) == 0 {
		return out
	}
	sum := 0
	for _, b := range data {
		sum += int(b)
	}
	i := int(data[0]) % len(data)
	out[i] ^= 1 << (sum % 8)
	return out
}

// HammingDistance counts the differing bits of two equally sized byte slices.
func HammingDistance(a, b []byte) int {
	if len(a) != len(b) {
		panic("hamming distance of slices with different lengths")
	}
	n := 0
	for i := range a {
		n += bits.OnesCount8(a[i] ^ b[i])
	}
	return n
}
