// Package block provides content addressed blocks.
package block

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/multiformats/go-multicodec"
	"github.com/storacha/go-toyhash/core/dag/cbor"
	"github.com/storacha/go-toyhash/core/ipld/hash"
	// registers toyhash multihashes used by Verify
	_ "github.com/storacha/go-toyhash/core/ipld/hash/toyhash"
)

// ErrIntegrity is returned when block bytes do not hash to the block link.
var ErrIntegrity = errors.New("mismatch in content integrity")

type Block interface {
	Link() ipld.Link
	Bytes() []byte
}

type block struct {
	link  ipld.Link
	bytes []byte
}

func (b *block) Link() ipld.Link {
	return b.link
}

func (b *block) Bytes() []byte {
	return b.bytes
}

// NewBlock creates a block without checking that bytes match the link.
func NewBlock(link ipld.Link, bytes []byte) Block {
	return &block{link, bytes}
}

// Encode encodes node as dag-cbor and links it with a digest from hasher.
func Encode(node ipld.Node, hasher hash.Hasher) (Block, error) {
	bytes, err := cbor.Encode(node)
	if err != nil {
		return nil, fmt.Errorf("encoding block: %w", err)
	}
	return build(multicodec.DagCbor, bytes, hasher)
}

// Raw links bytes as a raw block with a digest from hasher.
func Raw(bytes []byte, hasher hash.Hasher) (Block, error) {
	return build(multicodec.Raw, bytes, hasher)
}

func build(codec multicodec.Code, bytes []byte, hasher hash.Hasher) (Block, error) {
	digest, err := hasher.Sum(bytes)
	if err != nil {
		return nil, fmt.Errorf("hashing block: %w", err)
	}
	c := cid.NewCidV1(uint64(codec), digest.Bytes())
	return NewBlock(cidlink.Link{Cid: c}, bytes), nil
}

// Decode decodes the dag-cbor bytes of a block.
func Decode(b Block) (ipld.Node, error) {
	nd, err := cbor.Decode(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("decoding block %s: %w", b.Link(), err)
	}
	return nd, nil
}

// ToCID returns the CID a link refers to.
func ToCID(link ipld.Link) (cid.Cid, error) {
	if cl, ok := link.(cidlink.Link); ok {
		return cl.Cid, nil
	}
	return cid.Parse(link.String())
}

// Verify checks that the bytes of b hash to its link.
func Verify(b Block) error {
	c, err := ToCID(b.Link())
	if err != nil {
		return fmt.Errorf("parsing block link: %w", err)
	}
	hashed, err := c.Prefix().Sum(b.Bytes())
	if err != nil {
		return fmt.Errorf("hashing block %s: %w", c, err)
	}
	if !hashed.Equals(c) {
		return fmt.Errorf("%w, name: %s, data: %s", ErrIntegrity, c, hashed)
	}
	return nil
}
