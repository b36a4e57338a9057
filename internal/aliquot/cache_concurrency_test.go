package aliquot

import (
	"sync"
	"testing"
)

// TestCacheHighContention hammers one cache from many goroutines recording
// and reading the same keys. Values are the true aliquot sums, so every hit
// must return the recorded value; the cache may under-serve (miss) but never
// over-serve (wrong value).
func TestCacheHighContention(t *testing.T) {
	t.Parallel()
	cache, err := NewCache(10_000)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	mc := cache.(*memoCache)
	t.Cleanup(mc.Close)

	truth := make(map[uint64]uint64)
	for n := uint64(2); n < 512; n++ {
		s, err := AliquotSum(n)
		if err != nil {
			t.Fatalf("AliquotSum(%d): %v", n, err)
		}
		truth[n] = s
	}

	const numGoroutines = 64
	var wg sync.WaitGroup

	// Barrier to start all goroutines simultaneously
	barrier := make(chan struct{})

	errCh := make(chan string, numGoroutines)
	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func(offset int) {
			defer wg.Done()
			<-barrier
			for round := 0; round < 200; round++ {
				n := uint64(2 + (offset+round)%510)
				if v, ok := cache.Lookup(n); ok && v != truth[n] {
					select {
					case errCh <- "wrong value served":
					default:
					}
					return
				}
				cache.Record(n, truth[n])
			}
		}(g)
	}

	close(barrier)
	wg.Wait()
	close(errCh)

	if msg, bad := <-errCh; bad {
		t.Fatal(msg)
	}
}

// TestGeneratorSharedCacheConcurrency runs many generations of the same
// seeds against one shared cache and verifies every run classifies
// identically to an isolated run.
func TestGeneratorSharedCacheConcurrency(t *testing.T) {
	t.Parallel()
	seeds := []uint64{6, 12, 28, 30, 95, 220, 284, 960, 1184, 1210}

	isolated := newTestGenerator[uint64](t, NewConfig(Width64, 0, 0))
	want := make(map[uint64]Classification)
	for _, s := range seeds {
		want[s] = isolated.Generate(s).Classification
	}

	shared := newTestGenerator[uint64](t, NewConfig(Width64, 0, DefaultCacheCapacity))

	const numGoroutines = 32
	var wg sync.WaitGroup
	barrier := make(chan struct{})
	mismatches := make(chan string, numGoroutines)

	wg.Add(numGoroutines)
	for g := 0; g < numGoroutines; g++ {
		go func() {
			defer wg.Done()
			<-barrier
			for _, s := range seeds {
				res := shared.Generate(s)
				if res.Classification != want[s] {
					select {
					case mismatches <- res.Classification.String():
					default:
					}
					return
				}
			}
		}()
	}

	close(barrier)
	wg.Wait()
	close(mismatches)

	if msg, bad := <-mismatches; bad {
		t.Fatalf("shared cache changed a classification to %s", msg)
	}
}
