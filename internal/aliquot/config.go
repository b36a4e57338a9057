package aliquot

import (
	apperrors "github.com/agbru/aliquot/internal/errors"
)

// Defaults for generation parameters.
const (
	// DefaultCacheCapacity is the default bound on memoized entries.
	DefaultCacheCapacity = 1_000_000

	// DefaultMaxSeqLen is the safety valve on trace length: a sequence that
	// neither terminates nor cycles within this many elements is classified
	// Unknown.
	DefaultMaxSeqLen = 1_000_000
)

// Config carries the parameters of a generation run.
type Config struct {
	// Width selects the numeric width sequences are computed at.
	Width Width
	// MaxValue is the optional maximum-value threshold. A sequence value
	// strictly greater than MaxValue aborts the sequence as Unknown.
	// Zero means no threshold.
	MaxValue uint64
	// MaxSeqLen bounds the trace length. Zero selects DefaultMaxSeqLen.
	MaxSeqLen int
	// CacheCapacity bounds the shared memo cache in entries. Zero disables
	// memoization.
	CacheCapacity int
}

// NewConfig returns a Config for the given width, maximum-value threshold
// (zero for none) and cache capacity (zero to disable memoization).
func NewConfig(width Width, maxValue uint64, cacheCapacity int) Config {
	return Config{
		Width:         width,
		MaxValue:      maxValue,
		MaxSeqLen:     DefaultMaxSeqLen,
		CacheCapacity: cacheCapacity,
	}
}

// Validate reports a ConfigError for parameter combinations that cannot run.
func (c Config) Validate() error {
	if !c.Width.Valid() {
		return apperrors.NewConfigError("unsupported numeric width %d (want 16, 32 or 64)", int(c.Width))
	}
	if c.MaxSeqLen < 0 {
		return apperrors.NewConfigError("maximum sequence length must not be negative, got %d", c.MaxSeqLen)
	}
	if c.CacheCapacity < 0 {
		return apperrors.NewConfigError("cache capacity must not be negative, got %d", c.CacheCapacity)
	}
	if c.MaxValue > c.Width.MaxValue() {
		return apperrors.NewConfigError("maximum value %d does not fit a %d-bit number", c.MaxValue, int(c.Width))
	}
	return nil
}

// maxSeqLen resolves the effective trace-length bound.
func (c Config) maxSeqLen() int {
	if c.MaxSeqLen == 0 {
		return DefaultMaxSeqLen
	}
	return c.MaxSeqLen
}

// maxValue resolves the effective threshold; zero maps to the width maximum.
func (c Config) maxValue() uint64 {
	if c.MaxValue == 0 {
		return c.Width.MaxValue()
	}
	return c.MaxValue
}
