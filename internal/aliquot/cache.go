package aliquot

import (
	ristretto "github.com/dgraph-io/ristretto/v2"
)

// SequenceCache memoizes single steps of the aliquot map: for a number n it
// may remember the previously computed aliquot sum of n. Entries are facts
// about a pure function, so they are never invalidated; the cache may evict
// any entry at any time under capacity pressure, which costs recomputation
// but never correctness.
//
// Implementations must be safe for concurrent use. Concurrent writers always
// agree on the value for a given key, so write races cannot corrupt
// semantics.
type SequenceCache interface {
	// Lookup returns the memoized aliquot sum of n, if known.
	Lookup(n uint64) (uint64, bool)
	// Record stores next as the aliquot sum of n. It may be dropped silently.
	Record(n, next uint64)
}

// CacheStats exposes hit/miss counters from caches that track them.
type CacheStats interface {
	Stats() (hits, misses uint64)
}

// NewCache returns a SequenceCache bounded to roughly capacity entries.
// A capacity of zero or less disables memoization: every Lookup misses and
// Record is a no-op.
func NewCache(capacity int) (SequenceCache, error) {
	if capacity <= 0 {
		return disabledCache{}, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config[uint64, uint64]{
		// Track frequency for 10x the capacity, per ristretto guidance.
		NumCounters: int64(capacity) * 10,
		MaxCost:     int64(capacity),
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}
	return &memoCache{cache: c}, nil
}

// memoCache is the ristretto-backed SequenceCache. Eviction under capacity
// pressure is ristretto's admission policy; a dropped or rejected entry is
// observable only as a future miss.
type memoCache struct {
	cache *ristretto.Cache[uint64, uint64]
}

var (
	_ SequenceCache = (*memoCache)(nil)
	_ CacheStats    = (*memoCache)(nil)
)

// Lookup returns the memoized aliquot sum of n, if resident.
func (m *memoCache) Lookup(n uint64) (uint64, bool) {
	return m.cache.Get(n)
}

// Record stores next as the aliquot sum of n with unit cost. Admission is
// best effort; a rejected write only forces recomputation later.
func (m *memoCache) Record(n, next uint64) {
	m.cache.Set(n, next, 1)
}

// Stats returns the cache's cumulative hit and miss counts.
func (m *memoCache) Stats() (hits, misses uint64) {
	met := m.cache.Metrics
	return met.Hits(), met.Misses()
}

// Wait blocks until buffered writes have been applied. Used by tests that
// need deterministic residency.
func (m *memoCache) Wait() {
	m.cache.Wait()
}

// Close releases the cache's internal goroutines and buffers.
func (m *memoCache) Close() {
	m.cache.Close()
}

// disabledCache is the capacity-zero cache: it never hits and never stores.
type disabledCache struct{}

func (disabledCache) Lookup(uint64) (uint64, bool) { return 0, false }
func (disabledCache) Record(uint64, uint64)        {}
