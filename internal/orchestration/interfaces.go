package orchestration

import (
	"io"
	"sync"

	"github.com/agbru/aliquot/internal/aliquot"
)

// Update is a progress event emitted when a seed's generation completes.
type Update struct {
	// Index is the seed's position in the submitted batch.
	Index int
	// Seed is the number the sequence was generated for.
	Seed uint64
	// Classification is the resolved behavior of the sequence.
	Classification aliquot.Classification
}

// ProgressReporter defines the interface for displaying generation progress.
// It decouples the orchestration layer from the presentation layer:
// implementations handle the visual representation (spinner, counters) while
// the coordinator focuses on dispatching seeds.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates from the channel until it is
	// closed. It should be called in a separate goroutine.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - updates: Channel receiving per-seed completion events.
	//   - total: The number of seeds in the batch.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, updates <-chan Update, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan Update, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan Update, total int, out io.Writer) {
	f(wg, updates, total, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the update channel without displaying anything. Useful for quiet
// mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range updates {
		// Drain channel silently
	}
}

// Observer receives lifecycle events from the coordinator, decoupling it
// from the metrics backend.
type Observer interface {
	// SeedStarted is called when a worker picks up a seed.
	SeedStarted()
	// SeedFinished is called when a seed's sequence has been classified.
	SeedFinished(c aliquot.Classification)
	// CacheStats reports the shared cache's cumulative hit/miss counts at
	// the end of a batch.
	CacheStats(hits, misses uint64)
}

// NullObserver is a no-op Observer.
type NullObserver struct{}

func (NullObserver) SeedStarted()                          {}
func (NullObserver) SeedFinished(aliquot.Classification)   {}
func (NullObserver) CacheStats(hits, misses uint64)        {}
