package blockstore

import (
	"fmt"
	"iter"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/go-toyhash/core/ipld"
	"github.com/storacha/go-toyhash/core/ipld/block"
)

var log = logging.Logger("toyhash/blockstore")

type BlockReader interface {
	Get(link ipld.Link) (ipld.Block, bool, error)
	Iterator() iter.Seq2[ipld.Block, error]
}

type BlockWriter interface {
	Put(block ipld.Block) error
}

type BlockStore interface {
	BlockReader
	BlockWriter
}

type blockreader struct {
	keys []string
	blks map[string]ipld.Block
}

func (br *blockreader) Get(link ipld.Link) (ipld.Block, bool, error) {
	b, ok := br.blks[link.String()]
	return b, ok, nil
}

func (br *blockreader) Iterator() iter.Seq2[ipld.Block, error] {
	return func(yield func(ipld.Block, error) bool) {
		for _, k := range br.keys {
			v, ok := br.blks[k]
			var err error
			if !ok {
				err = fmt.Errorf("missing block for key: %s", k)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// add stores b unless a block with the same link is already present.
func (br *blockreader) add(b ipld.Block) {
	k := b.Link().String()
	if _, ok := br.blks[k]; ok {
		return
	}
	br.blks[k] = b
	br.keys = append(br.keys, k)
}

type blockstore struct {
	sync.RWMutex
	blockreader
	verify bool
}

func (bs *blockstore) Put(blk ipld.Block) error {
	if bs.verify {
		if err := block.Verify(blk); err != nil {
			log.Warnw("rejecting block", "link", blk.Link().String(), "error", err)
			return fmt.Errorf("putting block: %w", err)
		}
	}

	bs.Lock()
	defer bs.Unlock()
	bs.add(blk)
	return nil
}

func (bs *blockstore) Get(link ipld.Link) (ipld.Block, bool, error) {
	bs.RLock()
	defer bs.RUnlock()
	return bs.blockreader.Get(link)
}

func (bs *blockstore) Iterator() iter.Seq2[ipld.Block, error] {
	bs.RLock()
	keys := append([]string(nil), bs.keys...)
	bs.RUnlock()
	return func(yield func(ipld.Block, error) bool) {
		for _, k := range keys {
			bs.RLock()
			v, ok := bs.blks[k]
			bs.RUnlock()
			var err error
			if !ok {
				err = fmt.Errorf("missing block for key: %s", k)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// Option is an option configuring a block reader/writer.
type Option func(cfg *bsConfig) error

type bsConfig struct {
	blks     []ipld.Block
	blksiter iter.Seq2[ipld.Block, error]
	noverify bool
}

// WithBlocks configures the blocks the blockstore should contain.
func WithBlocks(blks []ipld.Block) Option {
	return func(cfg *bsConfig) error {
		cfg.blks = blks
		return nil
	}
}

// WithBlocksIterator configures the blocks the blockstore should contain.
func WithBlocksIterator(blks iter.Seq2[ipld.Block, error]) Option {
	return func(cfg *bsConfig) error {
		cfg.blksiter = blks
		return nil
	}
}

// WithoutVerification disables checking that block bytes hash to the block
// link.
func WithoutVerification() Option {
	return func(cfg *bsConfig) error {
		cfg.noverify = true
		return nil
	}
}

func NewBlockStore(options ...Option) (BlockStore, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	bs := &blockstore{
		blockreader: blockreader{
			keys: []string{},
			blks: map[string]ipld.Block{},
		},
		verify: !cfg.noverify,
	}
	for _, b := range cfg.blks {
		err := bs.Put(b)
		if err != nil {
			return nil, err
		}
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return nil, err
			}
			err := bs.Put(b)
			if err != nil {
				return nil, err
			}
		}
	}
	log.Debugw("created blockstore", "blocks", len(bs.keys))
	return bs, nil
}

func NewBlockReader(options ...Option) (BlockReader, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	br := &blockreader{
		keys: []string{},
		blks: map[string]ipld.Block{},
	}
	add := func(b ipld.Block) error {
		if !cfg.noverify {
			if err := block.Verify(b); err != nil {
				return fmt.Errorf("reading block: %w", err)
			}
		}
		br.add(b)
		return nil
	}

	for _, b := range cfg.blks {
		if err := add(b); err != nil {
			return nil, err
		}
	}
	if cfg.blksiter != nil {
		for b, err := range cfg.blksiter {
			if err != nil {
				return nil, err
			}
			if err := add(b); err != nil {
				return nil, err
			}
		}
	}

	return br, nil
}
