// Package v1 is version 1 of the toyhash mixing algorithm.
//
// This implementation is frozen. Digests produced by it have been published
// and must stay reproducible, so any change to the mixing logic belongs in a
// new version package.
package v1

import (
	"math/big"

	"github.com/storacha/go-toyhash/core/engine"
	"github.com/storacha/go-toyhash/core/failure"
	"github.com/storacha/go-toyhash/core/rotate"
)

const Version engine.Version = 1

var (
	// DefaultPrime is the byte sum of "There is always at least one prime
	// number in cryptography!", which is 5503 and is prime.
	DefaultPrime = byteSum("There is always at least one prime number in cryptography!")
	// DefaultSeed is the byte sum of "ToyHash". The engine raises it to the
	// power of the bit length.
	DefaultSeed = byteSum("ToyHash")
)

var two = big.NewInt(2)

type factory struct{}

func (factory) Version() engine.Version {
	return Version
}

func (factory) New(bitLength int, initials engine.Initials) (engine.Engine, error) {
	e, err := New(bitLength, initials)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Factory creates version 1 engines.
var Factory engine.Factory = factory{}

type Engine struct {
	bitLength int
	modulus   *big.Int // 2^bitLength
	prime     *big.Int
	seed      *big.Int
	state     *big.Int
	buffer    *big.Int
}

var _ engine.Restorer = (*Engine)(nil)

// New creates an engine for the given width, using the defaults for any
// initial not set.
func New(bitLength int, initials engine.Initials) (*Engine, error) {
	if err := engine.CheckBitLength(bitLength); err != nil {
		return nil, err
	}

	prime := DefaultPrime
	if initials.Prime != nil {
		if initials.Prime.Cmp(two) < 0 || !initials.Prime.ProbablyPrime(20) {
			return nil, failure.New(engine.ErrInvalidInitials, "prime must be a prime number, but %s given", initials.Prime)
		}
		prime = initials.Prime
	}
	seed := DefaultSeed
	if initials.Seed != nil {
		if initials.Seed.Sign() <= 0 {
			return nil, failure.New(engine.ErrInvalidInitials, "seed must be positive, but %s given", initials.Seed)
		}
		seed = initials.Seed
	}

	e := &Engine{
		bitLength: bitLength,
		modulus:   new(big.Int).Lsh(big.NewInt(1), uint(bitLength)),
		prime:     new(big.Int).Set(prime),
		seed:      new(big.Int).Exp(seed, big.NewInt(int64(bitLength)), nil),
		state:     new(big.Int),
	}

	product := new(big.Int).Mul(e.seed, e.prime)
	buffer := new(big.Int).Set(product)
	for buffer.BitLen() < bitLength {
		part := new(big.Int).Xor(product, big.NewInt(int64(buffer.BitLen())))
		buffer.Lsh(buffer, uint(part.BitLen()))
		buffer.Add(buffer, part)
	}
	e.buffer = buffer.Mod(buffer, rotate.Mask(uint(bitLength)))
	return e, nil
}

func (e *Engine) Version() engine.Version {
	return Version
}

func (e *Engine) BitLength() int {
	return e.bitLength
}

// Absorb mixes data into the buffer. The running state never decreases and
// is never reduced, so the cost per byte grows with the amount of data
// already absorbed.
//
// The state is used as a modulus, so input whose first byte adds nothing to
// a zero state is rejected with [engine.ErrZeroState]. That is a leading 0x01
// byte, or a leading byte equal to a prime override below 256. Once the state
// is positive it stays positive.
func (e *Engine) Absorb(data []byte) error {
	if len(data) > 0 && e.state.Sign() == 0 && e.increment(data[0]).Sign() == 0 {
		return failure.New(engine.ErrZeroState, "byte 0x%02x leaves the state at zero", data[0])
	}

	var sum, power, intermediate big.Int
	seven := big.NewInt(7)
	width := uint(e.bitLength)
	for _, c := range data {
		e.state.Add(e.state, e.increment(c))

		sum.Add(sum.SetUint64(uint64(c)), e.state)
		e.buffer = rotate.Rotate(rotate.FromParity(&sum), e.buffer, uint64(c), width)

		sum.Xor(e.state, e.prime)
		amount := sum.And(&sum, seven).Uint64()
		rotated := rotate.Byte(rotate.FromParity(e.state), c, amount)

		power.Exp(e.seed, new(big.Int).SetUint64(uint64(rotated)), e.state)
		intermediate.Exp(e.buffer, &power, e.prime)

		e.buffer.Xor(e.buffer, &intermediate)
		e.buffer.Mod(e.buffer, e.modulus)
	}
	return nil
}

// increment is the amount byte c adds to the state.
func (e *Engine) increment(c byte) *big.Int {
	if c == 0 {
		return e.prime
	}
	return new(big.Int).Mod(e.prime, new(big.Int).SetUint64(uint64(c)))
}

func (e *Engine) Buffer() *big.Int {
	return new(big.Int).Set(e.buffer)
}

func (e *Engine) Clone() engine.Engine {
	return &Engine{
		bitLength: e.bitLength,
		modulus:   e.modulus,
		prime:     new(big.Int).Set(e.prime),
		seed:      new(big.Int).Set(e.seed),
		state:     new(big.Int).Set(e.state),
		buffer:    new(big.Int).Set(e.buffer),
	}
}

// Scalars exports copies of the engine state. Seed is the already
// exponentiated value, not the literal it was derived from.
func (e *Engine) Scalars() engine.Scalars {
	return engine.Scalars{
		Prime:  new(big.Int).Set(e.prime),
		Seed:   new(big.Int).Set(e.seed),
		State:  new(big.Int).Set(e.state),
		Buffer: new(big.Int).Set(e.buffer),
	}
}

// Restore replaces the engine state with s.
func (e *Engine) Restore(s engine.Scalars) error {
	if s.Prime == nil || s.Seed == nil || s.State == nil || s.Buffer == nil {
		return failure.New(engine.ErrInvalidInitials, "incomplete engine state")
	}
	if s.Prime.Cmp(two) < 0 || s.Seed.Sign() <= 0 || s.State.Sign() < 0 {
		return failure.New(engine.ErrInvalidInitials, "engine state out of range")
	}
	if s.Buffer.Sign() < 0 || s.Buffer.Cmp(e.modulus) >= 0 {
		return failure.New(engine.ErrInvalidInitials, "buffer does not fit in %d bits", e.bitLength)
	}
	e.prime = new(big.Int).Set(s.Prime)
	e.seed = new(big.Int).Set(s.Seed)
	e.state = new(big.Int).Set(s.State)
	e.buffer = new(big.Int).Set(s.Buffer)
	return nil
}

func byteSum(s string) *big.Int {
	var n int64
	for i := 0; i < len(s); i++ {
		n += int64(s[i])
	}
	return big.NewInt(n)
}
