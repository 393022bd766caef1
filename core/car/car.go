package car

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	"github.com/ipld/go-car/util"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/storacha/go-toyhash/core/ipld"
	"github.com/storacha/go-toyhash/core/ipld/block"
	"github.com/storacha/go-toyhash/core/iterable"
)

var log = logging.Logger("toyhash/car")

func init() {
	cbor.RegisterCborType(carHeader{})
}

type carHeader struct {
	Roots   []cid.Cid
	Version uint64
}

func Encode(roots []ipld.Link, blocks iterable.Iterator[ipld.Block]) io.Reader {
	reader, writer := io.Pipe()
	go func() {
		h := carHeader{Version: 1}
		for _, r := range roots {
			c, err := block.ToCID(r)
			if err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR header: %s", err))
				return
			}
			h.Roots = append(h.Roots, c)
		}
		hb, err := cbor.DumpObject(h)
		if err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %s", err))
			return
		}
		if err := util.LdWrite(writer, hb); err != nil {
			writer.CloseWithError(err)
			return
		}
		n := 0
		for {
			blk, err := blocks.Next()
			if err != nil {
				if err == io.EOF {
					break
				}
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %s", err))
				return
			}
			c, err := block.ToCID(blk.Link())
			if err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %s", err))
				return
			}
			if err := util.LdWrite(writer, c.Bytes(), blk.Bytes()); err != nil {
				writer.CloseWithError(err)
				return
			}
			n++
		}
		log.Debugw("encoded CAR", "roots", len(roots), "blocks", n)
		writer.Close()
	}()
	return reader
}

// Decode reads a CAR. Every block is checked against its CID as it is read.
func Decode(reader io.Reader) ([]ipld.Link, iterable.Iterator[ipld.Block], error) {
	br := bufio.NewReader(reader)

	hb, err := util.LdRead(br)
	if err != nil {
		return nil, nil, err
	}

	var ch carHeader
	if err := cbor.DecodeInto(hb, &ch); err != nil {
		return nil, nil, fmt.Errorf("invalid header: %v", err)
	}

	if ch.Version != 1 {
		return nil, nil, fmt.Errorf("invalid car version: %d", ch.Version)
	}

	roots := make([]ipld.Link, 0, len(ch.Roots))
	for _, r := range ch.Roots {
		roots = append(roots, cidlink.Link{Cid: r})
	}

	return roots, iterable.NewIterator(func() (ipld.Block, error) {
		if br == nil {
			return nil, io.EOF
		}
		c, bytes, err := util.ReadNode(br)
		if err != nil {
			if err == io.EOF {
				br = nil
			}
			return nil, err
		}

		blk := block.NewBlock(cidlink.Link{Cid: c}, bytes)
		if err := block.Verify(blk); err != nil {
			log.Warnw("corrupt CAR block", "cid", c.String(), "error", err)
			return nil, err
		}
		return blk, nil
	}), nil
}
