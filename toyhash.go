package toyhash

import (
	"fmt"
	"hash"
	"io"
	"math/big"

	"github.com/multiformats/go-multibase"
	"github.com/storacha/go-toyhash/core/codec/hex"
	"github.com/storacha/go-toyhash/core/engine"
	"github.com/storacha/go-toyhash/core/engine/registry"
	v1 "github.com/storacha/go-toyhash/core/engine/v1"
	"github.com/storacha/go-toyhash/core/failure"
)

// Version identifies an algorithm version.
type Version = engine.Version

// AlgorithmVersion is the latest published algorithm version.
const AlgorithmVersion = v1.Version

// ToyHash is a streaming digest of a fixed bit length. It is not safe for
// concurrent use.
//
// Use New to create one. The zero value only serves as a target for
// UnmarshalBinary: until then Update and Write return ErrInvalidState and the
// digest is empty.
type ToyHash struct {
	bitLength int
	version   engine.Version
	initials  engine.Initials
	registry  *registry.Registry
	// initial is the engine before any input. It is never mutated and may be
	// shared between copies.
	initial engine.Engine
	engine  engine.Engine
	length  uint64
}

var _ hash.Hash = (*ToyHash)(nil)

// New creates a ToyHash of bitLength bits and absorbs data into it. data may
// be nil, a []byte or an io.Reader. Text must be encoded to bytes first.
func New(data any, bitLength int, options ...Option) (*ToyHash, error) {
	if err := engine.CheckBitLength(bitLength); err != nil {
		return nil, err
	}
	if err := checkInput(data); err != nil {
		return nil, err
	}

	cfg := hashConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.registry == nil {
		cfg.registry = registry.Default
	}
	if cfg.version == 0 {
		cfg.version = cfg.registry.Latest()
	}

	initial, err := cfg.registry.Instantiate(cfg.version, bitLength, cfg.initials)
	if err != nil {
		return nil, err
	}

	h := &ToyHash{
		bitLength: bitLength,
		version:   cfg.version,
		initials:  copyInitials(cfg.initials),
		registry:  cfg.registry,
		initial:   initial,
		engine:    initial.Clone(),
	}
	if err := h.Update(data); err != nil {
		return nil, err
	}
	return h, nil
}

// Update absorbs data. Repeated calls are equivalent to a single call with
// the concatenation of all the arguments. Data the engine rejects, such as a
// leading 0x01 byte with version 1, is not absorbed and the error is returned.
func (h *ToyHash) Update(data any) error {
	switch d := data.(type) {
	case nil:
		return nil
	case []byte:
		return h.absorb(d)
	case io.Reader:
		buf := make([]byte, readSize)
		for {
			n, err := d.Read(buf)
			if n > 0 {
				if aerr := h.absorb(buf[:n]); aerr != nil {
					return aerr
				}
			}
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
		}
	default:
		return checkInput(data)
	}
}

// readSize is the chunk size used to drain an io.Reader.
const readSize = 32 * 1024

// Write absorbs p. It only fails when the engine rejects p, in which case
// nothing is absorbed.
func (h *ToyHash) Write(p []byte) (int, error) {
	if err := h.absorb(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (h *ToyHash) absorb(p []byte) error {
	if h.engine == nil {
		return failure.New(ErrInvalidState, "hash is not initialized, use New or UnmarshalBinary")
	}
	if err := h.engine.Absorb(p); err != nil {
		return err
	}
	h.length += uint64(len(p))
	return nil
}

// Digest returns the digest as DigestSize big-endian bytes. It does not change
// the state of the hash.
func (h *ToyHash) Digest() []byte {
	if h.engine == nil {
		return nil
	}
	return hex.ToDigest(h.engine.Buffer(), h.bitLength)
}

// HexDigest is like Digest except the digest is returned as a lowercase hex
// string of BitLength/4 characters.
func (h *ToyHash) HexDigest() string {
	if h.engine == nil {
		return ""
	}
	return hex.ToHex(h.engine.Buffer(), h.bitLength)
}

// Encode returns the digest in the given multibase encoding.
func (h *ToyHash) Encode(encoding multibase.Encoding) (string, error) {
	if h.engine == nil {
		return "", failure.New(ErrInvalidState, "hash is not initialized, use New or UnmarshalBinary")
	}
	return hex.Multibase(h.engine.Buffer(), h.bitLength, encoding)
}

func (h *ToyHash) String() string {
	return h.HexDigest()
}

// Copy returns an independent clone of the hash. It can be used to compute
// the digests of data sharing a common prefix.
func (h *ToyHash) Copy() *ToyHash {
	c := *h
	c.initials = copyInitials(h.initials)
	if h.engine != nil {
		c.engine = h.engine.Clone()
	}
	return &c
}

// Sum appends the digest to b. It does not change the state of the hash.
func (h *ToyHash) Sum(b []byte) []byte {
	return append(b, h.Digest()...)
}

// Reset returns the hash to its state before any input.
func (h *ToyHash) Reset() {
	if h.initial == nil {
		return
	}
	h.engine = h.initial.Clone()
	h.length = 0
}

// Size is the digest size in bytes.
func (h *ToyHash) Size() int {
	return h.DigestSize()
}

// BlockSize is 1, input is absorbed one byte at a time.
func (h *ToyHash) BlockSize() int {
	return 1
}

func (h *ToyHash) BitLength() int {
	return h.bitLength
}

func (h *ToyHash) DigestSize() int {
	return h.bitLength / 8
}

func (h *ToyHash) Version() Version {
	return h.version
}

// Len is the number of bytes absorbed so far.
func (h *ToyHash) Len() uint64 {
	return h.length
}

func checkInput(data any) error {
	switch data.(type) {
	case nil, []byte, io.Reader:
		return nil
	case string:
		return failure.New(ErrInvalidInputType, "strings must be encoded to bytes before hashing")
	default:
		return failure.New(ErrInvalidInputType, "input data should be bytes or an io.Reader, but %T given", data)
	}
}

func copyInitials(i engine.Initials) engine.Initials {
	var c engine.Initials
	if i.Prime != nil {
		c.Prime = new(big.Int).Set(i.Prime)
	}
	if i.Seed != nil {
		c.Seed = new(big.Int).Set(i.Seed)
	}
	return c
}
