package toyhash

import (
	"math/big"

	"github.com/storacha/go-toyhash/core/engine"
	"github.com/storacha/go-toyhash/core/engine/registry"
)

// Option is an option configuring a ToyHash.
type Option func(cfg *hashConfig) error

type hashConfig struct {
	version  engine.Version
	initials engine.Initials
	registry *registry.Registry
}

// WithVersion selects the algorithm version. The latest version is used if
// not set.
func WithVersion(version Version) Option {
	return func(cfg *hashConfig) error {
		cfg.version = version
		return nil
	}
}

// WithPrime overrides the prime the algorithm is initialized with.
func WithPrime(prime *big.Int) Option {
	return func(cfg *hashConfig) error {
		cfg.initials.Prime = prime
		return nil
	}
}

// WithSeed overrides the seed the algorithm is initialized with.
func WithSeed(seed *big.Int) Option {
	return func(cfg *hashConfig) error {
		cfg.initials.Seed = seed
		return nil
	}
}

// WithInitials overrides both the prime and the seed. Nil fields keep the
// defaults.
func WithInitials(initials engine.Initials) Option {
	return func(cfg *hashConfig) error {
		cfg.initials = initials
		return nil
	}
}

// WithRegistry resolves algorithm versions from r instead of
// [registry.Default].
func WithRegistry(r *registry.Registry) Option {
	return func(cfg *hashConfig) error {
		cfg.registry = r
		return nil
	}
}
