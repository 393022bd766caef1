// Package registry maps algorithm versions to the factories implementing
// them.
package registry

import (
	"fmt"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/storacha/go-toyhash/core/engine"
	v1 "github.com/storacha/go-toyhash/core/engine/v1"
	"github.com/storacha/go-toyhash/core/failure"
)

const (
	ErrUnknownAlgorithmVersion failure.Kind = "UnknownAlgorithmVersion"
	ErrVersionMismatch         failure.Kind = "VersionMismatch"
	ErrVersionRegistered       failure.Kind = "VersionRegistered"
)

// TemplateCacheSize is the default number of initialized engines kept per
// registry.
var TemplateCacheSize = 64

// Registry resolves algorithm versions. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[engine.Version]engine.Factory
	latest    engine.Version
	templates *lru.Cache[templateKey, engine.Engine]
}

type templateKey struct {
	version   engine.Version
	bitLength int
	prime     string
	seed      string
}

// Option is an option configuring a registry.
type Option func(cfg *regConfig) error

type regConfig struct {
	size      int
	factories map[engine.Version]engine.Factory
}

// WithTemplateCacheSize sets how many initialized engines are cached. Values
// less than 1 use [TemplateCacheSize].
func WithTemplateCacheSize(size int) Option {
	return func(cfg *regConfig) error {
		cfg.size = size
		return nil
	}
}

// WithFactory registers factory under version when the registry is created.
func WithFactory(version engine.Version, factory engine.Factory) Option {
	return func(cfg *regConfig) error {
		if _, ok := cfg.factories[version]; ok {
			return failure.New(ErrVersionRegistered, "algorithm version %d is already registered", version)
		}
		cfg.factories[version] = factory
		return nil
	}
}

// New creates a registry.
func New(options ...Option) (*Registry, error) {
	cfg := regConfig{factories: map[engine.Version]engine.Factory{}}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.size <= 0 {
		cfg.size = TemplateCacheSize
	}
	templates, err := lru.New[templateKey, engine.Engine](cfg.size)
	if err != nil {
		return nil, fmt.Errorf("creating engine template LRU: %w", err)
	}
	r := &Registry{
		factories: map[engine.Version]engine.Factory{},
		templates: templates,
	}
	for v, f := range cfg.factories {
		if err := r.Register(v, f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a factory for version. Registered versions can not be
// replaced.
func (r *Registry) Register(version engine.Version, factory engine.Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[version]; ok {
		return failure.New(ErrVersionRegistered, "algorithm version %d is already registered", version)
	}
	r.factories[version] = factory
	if version > r.latest {
		r.latest = version
	}
	return nil
}

// Resolve returns the factory registered for version.
func (r *Registry) Resolve(version engine.Version) (engine.Factory, error) {
	r.mu.RLock()
	f, ok := r.factories[version]
	r.mu.RUnlock()
	if !ok {
		return nil, failure.New(ErrUnknownAlgorithmVersion, "implementation of algorithm version %d not found", version)
	}
	if f.Version() != version {
		return nil, failure.New(ErrVersionMismatch, "algorithm version %d expected, but %d was found", version, f.Version())
	}
	return f, nil
}

// Latest is the highest registered version, or 0 for an empty registry.
func (r *Registry) Latest() engine.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// Versions lists registered versions in ascending order.
func (r *Registry) Versions() []engine.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()
	versions := make([]engine.Version, 0, len(r.factories))
	for v := range r.factories {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions
}

// Instantiate creates a fresh engine of the given version. Initialization
// does not depend on input, so engines are built once per version, width and
// initials and cloned afterwards.
func (r *Registry) Instantiate(version engine.Version, bitLength int, initials engine.Initials) (engine.Engine, error) {
	f, err := r.Resolve(version)
	if err != nil {
		return nil, err
	}
	key := templateKey{version: version, bitLength: bitLength}
	if initials.Prime != nil {
		key.prime = initials.Prime.String()
	}
	if initials.Seed != nil {
		key.seed = initials.Seed.String()
	}
	if tmpl, ok := r.templates.Get(key); ok {
		return tmpl.Clone(), nil
	}
	tmpl, err := f.New(bitLength, initials)
	if err != nil {
		return nil, err
	}
	r.templates.Add(key, tmpl)
	return tmpl.Clone(), nil
}

// Default ships every published algorithm version.
var Default = must(New(WithFactory(v1.Version, v1.Factory)))

func must(r *Registry, err error) *Registry {
	if err != nil {
		panic(err)
	}
	return r
}
