package toyhash

import (
	"github.com/storacha/go-toyhash/core/engine"
	"github.com/storacha/go-toyhash/core/engine/registry"
	"github.com/storacha/go-toyhash/core/failure"
)

// Error kinds returned by this package. Match them with errors.Is.
const (
	ErrInvalidBitLength        = engine.ErrInvalidBitLength
	ErrInvalidInitials         = engine.ErrInvalidInitials
	ErrUnknownAlgorithmVersion = registry.ErrUnknownAlgorithmVersion
	ErrVersionMismatch         = registry.ErrVersionMismatch
	ErrZeroState               = engine.ErrZeroState

	ErrInvalidInputType failure.Kind = "InvalidInputType"
	ErrInvalidState     failure.Kind = "InvalidState"
)
