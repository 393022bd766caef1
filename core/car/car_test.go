package car

import (
	"bytes"
	"io"
	"strings"
	"testing"

	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/ipld/go-car/util"
	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/ipld/go-ipld-prime/fluent/qp"
	"github.com/ipld/go-ipld-prime/node/basicnode"
	"github.com/storacha/go-toyhash/core/dag/blockstore"
	"github.com/storacha/go-toyhash/core/ipld"
	"github.com/storacha/go-toyhash/core/ipld/block"
	"github.com/storacha/go-toyhash/core/ipld/hash/sha256"
	"github.com/storacha/go-toyhash/core/ipld/hash/toyhash"
	"github.com/storacha/go-toyhash/core/iterable"
	"github.com/storacha/go-toyhash/testing/helpers"
	"github.com/stretchr/testify/require"
)

// fixture builds a small DAG: two raw leaves linked from a dag-cbor root.
func fixture(t *testing.T) (ipld.Block, []ipld.Block) {
	leaves := []ipld.Block{
		helpers.Must(block.Raw([]byte("lasto beth lammen"), toyhash.Hasher256)),
		helpers.Must(block.Raw([]byte("Klaatu barada nikto"), sha256.Hasher)),
	}
	nd, err := qp.BuildMap(basicnode.Prototype.Any, 1, func(ma datamodel.MapAssembler) {
		qp.MapEntry(ma, "leaves", qp.List(2, func(la datamodel.ListAssembler) {
			for _, l := range leaves {
				qp.ListEntry(la, qp.Link(l.Link()))
			}
		}))
	})
	require.NoError(t, err)
	root := helpers.Must(block.Encode(nd, toyhash.Hasher512))
	return root, append(leaves, root)
}

func TestEncodeDecode(t *testing.T) {
	root, blks := fixture(t)

	rd := Encode([]ipld.Link{root.Link()}, iterable.From(blks))
	encoded, err := io.ReadAll(rd)
	require.NoError(t, err)

	roots, it, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Equal(t, root.Link().String(), roots[0].String())

	decoded, err := iterable.Collect(it)
	require.NoError(t, err)
	require.Len(t, decoded, len(blks))
	for i, b := range blks {
		require.Equal(t, b.Link().String(), decoded[i].Link().String())
		require.Equal(t, b.Bytes(), decoded[i].Bytes())
	}

	t.Run("round trip", func(t *testing.T) {
		roots, it, err := Decode(bytes.NewReader(encoded))
		require.NoError(t, err)
		again, err := io.ReadAll(Encode(roots, it))
		require.NoError(t, err)
		require.Equal(t, encoded, again)
	})

	t.Run("from blockstore", func(t *testing.T) {
		bs, err := blockstore.NewBlockStore(blockstore.WithBlocks(blks))
		require.NoError(t, err)
		fromStore, err := io.ReadAll(Encode([]ipld.Link{root.Link()}, iterable.FromSeq2(bs.Iterator())))
		require.NoError(t, err)
		require.Equal(t, encoded, fromStore)
	})
}

func TestDecodeIntegrity(t *testing.T) {
	root, blks := fixture(t)
	tampered := append([]ipld.Block{}, blks...)
	tampered[0] = block.NewBlock(blks[0].Link(), []byte("lasto beth lammeN"))

	encoded, err := io.ReadAll(Encode([]ipld.Link{root.Link()}, iterable.From(tampered)))
	require.NoError(t, err)

	_, it, err := Decode(bytes.NewReader(encoded))
	require.NoError(t, err)
	_, err = iterable.Collect(it)
	require.ErrorIs(t, err, block.ErrIntegrity)
}

func TestDecodeInvalidVersion(t *testing.T) {
	h := carHeader{Version: 2}
	hb, err := cbor.DumpObject(h)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, util.LdWrite(&buf, hb))

	_, _, err = Decode(&buf)
	require.Error(t, err)
	require.Equal(t, "invalid car version: 2", err.Error())
}

func TestDecodeInvalidHeader(t *testing.T) {
	_, _, err := Decode(strings.NewReader(""))
	require.Error(t, err)
}
