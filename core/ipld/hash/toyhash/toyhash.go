// Package toyhash makes toyhash digests available as multihashes.
//
// Importing the package registers the fixed width toyhash functions with
// go-multihash, so multihash.Sum, cid.Prefix.Sum and anything built on them
// can compute and verify toyhash addressed content.
package toyhash

import (
	"fmt"
	gohash "hash"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	mhreg "github.com/multiformats/go-multihash/core"
	"github.com/storacha/go-toyhash"
	"github.com/storacha/go-toyhash/core/engine"
	"github.com/storacha/go-toyhash/core/failure"
	"github.com/storacha/go-toyhash/core/ipld/hash"
)

// CodeBase sits in the multicodec private use range. The code of a toyhash
// width is CodeBase plus the width in bits.
const CodeBase = 0x300000

const (
	Code64  = CodeBase + 64
	Code128 = CodeBase + 128
	Code256 = CodeBase + 256
	Code512 = CodeBase + 512
)

// Code returns the multihash code for a toyhash of bitLength bits.
func Code(bitLength int) uint64 {
	return CodeBase + uint64(bitLength)
}

// Name returns the multihash name for a toyhash of bitLength bits.
func Name(bitLength int) string {
	return fmt.Sprintf("toyhash-%d", bitLength)
}

func init() {
	for bits, shortcut := range toyhash.Shortcuts {
		code := Code(bits)
		mhreg.Register(code, func() gohash.Hash {
			h, err := shortcut(nil)
			if err != nil {
				panic(err)
			}
			return h
		})
		multihash.Names[Name(bits)] = code
		multihash.Codes[code] = Name(bits)
	}
}

type hasher struct {
	bitLength int
}

func (h hasher) Code() uint64 {
	return Code(h.bitLength)
}

func (h hasher) Size() uint64 {
	return uint64(h.bitLength / 8)
}

func (h hasher) Sum(b []byte) (hash.Digest, error) {
	th, err := toyhash.New(b, h.bitLength)
	if err != nil {
		return nil, err
	}
	sum := th.Digest()
	d, err := multihash.Encode(sum, h.Code())
	if err != nil {
		return nil, err
	}
	return hash.NewDigest(h.Code(), h.Size(), sum, d), nil
}

var (
	Hasher64  hash.Hasher = hasher{64}
	Hasher128 hash.Hasher = hasher{128}
	Hasher256 hash.Hasher = hasher{256}
	Hasher512 hash.Hasher = hasher{512}
)

// NewHasher returns the hasher for a registered width.
func NewHasher(bitLength int) (hash.Hasher, error) {
	if err := engine.CheckBitLength(bitLength); err != nil {
		return nil, err
	}
	if _, ok := toyhash.Shortcuts[bitLength]; !ok {
		return nil, failure.New(engine.ErrInvalidBitLength, "no multihash registered for %d bit toyhash", bitLength)
	}
	return hasher{bitLength}, nil
}

// Prefix returns a CIDv1 prefix for content encoded with codec and hashed
// with a toyhash of bitLength bits.
func Prefix(bitLength int, codec multicodec.Code) cid.Prefix {
	return cid.Prefix{
		Version:  1,
		Codec:    uint64(codec),
		MhType:   Code(bitLength),
		MhLength: -1,
	}
}
