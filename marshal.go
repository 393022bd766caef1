package toyhash

import (
	"bytes"
	"encoding"
	"io"
	"math/big"

	"github.com/multiformats/go-varint"
	"github.com/storacha/go-toyhash/core/engine"
	"github.com/storacha/go-toyhash/core/engine/registry"
	"github.com/storacha/go-toyhash/core/failure"
	"github.com/storacha/go-toyhash/core/multiformat"
)

// StateCode tags marshalled hash state.
const StateCode = 0x746879

var (
	_ encoding.BinaryMarshaler   = (*ToyHash)(nil)
	_ encoding.BinaryUnmarshaler = (*ToyHash)(nil)
)

// MarshalBinary exports the state of the hash so hashing can be resumed
// later with UnmarshalBinary.
func (h *ToyHash) MarshalBinary() ([]byte, error) {
	if h.engine == nil {
		return nil, failure.New(ErrInvalidState, "hash is not initialized")
	}
	r, ok := h.engine.(engine.Restorer)
	if !ok {
		return nil, failure.New(ErrInvalidState, "algorithm version %d does not export its state", h.version)
	}
	s := r.Scalars()

	var b []byte
	b = append(b, varint.ToUvarint(uint64(h.version))...)
	b = append(b, varint.ToUvarint(uint64(h.bitLength))...)
	b = append(b, varint.ToUvarint(h.length)...)
	for _, n := range []*big.Int{h.initials.Prime, h.initials.Seed, s.State, s.Buffer} {
		b = appendInt(b, n)
	}
	return multiformat.TagWith(StateCode, b), nil
}

// UnmarshalBinary restores state exported by MarshalBinary. A registry set
// with WithRegistry on the receiver is kept, otherwise [registry.Default] is
// used.
func (h *ToyHash) UnmarshalBinary(data []byte) error {
	b, err := multiformat.UntagWith(StateCode, data, 0)
	if err != nil {
		return failure.Wrap(ErrInvalidState, err, "reading state tag")
	}
	r := bytes.NewReader(b)

	var fields [3]uint64
	for i := range fields {
		fields[i], err = varint.ReadUvarint(r)
		if err != nil {
			return failure.Wrap(ErrInvalidState, err, "reading state header")
		}
	}
	version, bitLength, length := engine.Version(fields[0]), fields[1], fields[2]
	if bitLength > 1<<24 {
		return failure.New(ErrInvalidState, "bit length %d out of range", bitLength)
	}
	if err := engine.CheckBitLength(int(bitLength)); err != nil {
		return err
	}

	var ints [4]*big.Int
	for i := range ints {
		ints[i], err = readInt(r)
		if err != nil {
			return failure.Wrap(ErrInvalidState, err, "reading state scalars")
		}
	}
	if r.Len() != 0 {
		return failure.New(ErrInvalidState, "%d trailing bytes after state", r.Len())
	}
	initials := engine.Initials{Prime: ints[0], Seed: ints[1]}
	state, buffer := ints[2], ints[3]
	if state == nil {
		state = new(big.Int)
	}
	if buffer == nil {
		buffer = new(big.Int)
	}

	reg := h.registry
	if reg == nil {
		reg = registry.Default
	}
	initial, err := reg.Instantiate(version, int(bitLength), initials)
	if err != nil {
		return err
	}
	restorer, ok := initial.Clone().(engine.Restorer)
	if !ok {
		return failure.New(ErrInvalidState, "algorithm version %d does not restore its state", version)
	}
	s := restorer.Scalars()
	s.State, s.Buffer = state, buffer
	if err := restorer.Restore(s); err != nil {
		return failure.Wrap(ErrInvalidState, err, "restoring engine")
	}

	*h = ToyHash{
		bitLength: int(bitLength),
		version:   version,
		initials:  initials,
		registry:  reg,
		initial:   initial,
		engine:    restorer,
		length:    length,
	}
	return nil
}

// appendInt appends n as a varint length followed by its big-endian bytes. A
// nil n is written as zero length.
func appendInt(b []byte, n *big.Int) []byte {
	if n == nil {
		return append(b, 0)
	}
	nb := n.Bytes()
	b = append(b, varint.ToUvarint(uint64(len(nb)))...)
	return append(b, nb...)
}

func readInt(r *bytes.Reader) (*big.Int, error) {
	size, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	if size > uint64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	nb := make([]byte, size)
	if _, err := io.ReadFull(r, nb); err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(nb), nil
}
