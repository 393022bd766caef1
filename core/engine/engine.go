// Package engine defines the contract between a digest handle and the
// versioned mixing algorithms it delegates to.
//
// An algorithm version, once published, is frozen: its Factory must keep
// producing bit-for-bit identical digests for all time. Changes to the mixing
// logic are introduced as a new version with a new Factory, never by editing
// an existing one.
package engine

import (
	"math/big"

	"github.com/storacha/go-toyhash/core/failure"
)

// Version identifies a frozen mixing algorithm.
type Version uint64

const (
	ErrInvalidBitLength failure.Kind = "InvalidBitLength"
	ErrInvalidInitials  failure.Kind = "InvalidInitials"
	// ErrZeroState is returned when absorbing a byte would leave the running
	// state at zero, which the mixing step uses as a modulus.
	ErrZeroState failure.Kind = "ZeroState"
)

// Engine absorbs bytes into a fixed width buffer.
type Engine interface {
	// Version is the algorithm version implemented by the engine.
	Version() Version
	// BitLength is the width of the buffer in bits.
	BitLength() int
	// Absorb mixes data into the buffer, one byte at a time, in order. On
	// error the engine is left unchanged.
	Absorb(data []byte) error
	// Buffer returns a copy of the current digest value. It is always in
	// [0, 2^BitLength).
	Buffer() *big.Int
	// Clone returns an independent engine with identical state.
	Clone() Engine
}

// Scalars is the complete internal state of an engine.
type Scalars struct {
	Prime  *big.Int
	Seed   *big.Int
	State  *big.Int
	Buffer *big.Int
}

// Restorer is implemented by engines whose state can be exported and
// restored, which makes hashing resumable.
type Restorer interface {
	Engine
	Scalars() Scalars
	Restore(s Scalars) error
}

// Initials override the constants an engine is initialized with. Nil fields
// keep the algorithm's defaults.
type Initials struct {
	Prime *big.Int
	Seed  *big.Int
}

// Factory creates engines of a single algorithm version.
type Factory interface {
	Version() Version
	New(bitLength int, initials Initials) (Engine, error)
}

// CheckBitLength verifies bitLength is a positive multiple of 8.
func CheckBitLength(bitLength int) error {
	if bitLength <= 0 || bitLength%8 != 0 {
		return failure.New(ErrInvalidBitLength, "bit length must be positive integer multiple of 8, but %d given", bitLength)
	}
	return nil
}
