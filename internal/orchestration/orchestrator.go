package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/aliquot/internal/aliquot"
	apperrors "github.com/agbru/aliquot/internal/errors"
	"github.com/agbru/aliquot/internal/logging"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the update
// channel relative to the worker count. A larger buffer reduces the
// likelihood of blocking worker goroutines when the UI is slow to consume
// updates.
const ProgressBufferMultiplier = 5

// tracerName identifies this package's OpenTelemetry tracer.
const tracerName = "github.com/agbru/aliquot/internal/orchestration"

// Run evaluates seeds under cfg with the given number of workers and returns
// one Result per seed, in seed-submission order. It is the plain entry point
// for callers without progress or metrics surfaces.
func Run(ctx context.Context, seeds []uint64, cfg aliquot.Config, workers int) ([]aliquot.Result, error) {
	return ExecuteGenerations(ctx, seeds, cfg, workers, NullProgressReporter{}, NullObserver{}, logging.NewNopLogger(), io.Discard)
}

// ExecuteGenerations orchestrates the concurrent classification of a batch
// of seeds.
//
// Seeds are independent work items: no seed's computation depends on another
// seed's trace, only on the shared memo cache as a performance accelerator.
// Workers therefore run without synchronization beyond the cache's own
// concurrency guarantees, and results are slotted into a slice indexed by
// submission order, so completion order across workers never affects output
// order.
//
// Parameters:
//   - ctx: The context for cancellation of the whole batch.
//   - seeds: The ordered seeds to classify.
//   - cfg: The generation configuration (width, threshold, cache capacity).
//   - workers: The maximum number of concurrent generations (min 1).
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - obs: The lifecycle observer (use NullObserver when metrics are off).
//   - log: The logger receiving batch-level events.
//   - out: The io.Writer for progress display.
//
// Returns:
//   - []aliquot.Result: One result per seed, same order as seeds.
//   - error: A validation or configuration error, or the context's error if
//     the batch was canceled. Overflow and threshold breaches are not errors;
//     they surface as Unknown classifications.
func ExecuteGenerations(ctx context.Context, seeds []uint64, cfg aliquot.Config, workers int, reporter ProgressReporter, obs Observer, log logging.Logger, out io.Writer) ([]aliquot.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateSeeds(seeds, cfg.Width); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "aliquot.ExecuteGenerations")
	span.SetAttributes(
		attribute.Int("seeds", len(seeds)),
		attribute.Int("workers", workers),
		attribute.Int("width", int(cfg.Width)),
	)
	defer span.End()

	switch cfg.Width {
	case aliquot.Width16:
		return executeWidth[uint16](ctx, seeds, cfg, workers, reporter, obs, log, out)
	case aliquot.Width32:
		return executeWidth[uint32](ctx, seeds, cfg, workers, reporter, obs, log, out)
	default:
		return executeWidth[uint64](ctx, seeds, cfg, workers, reporter, obs, log, out)
	}
}

// executeWidth runs the batch at a concrete numeric width. One cache and one
// generator are shared by all workers; the generator keeps no per-seed state.
func executeWidth[T aliquot.Number](ctx context.Context, seeds []uint64, cfg aliquot.Config, workers int, reporter ProgressReporter, obs Observer, log logging.Logger, out io.Writer) ([]aliquot.Result, error) {
	cache, err := aliquot.NewCache(cfg.CacheCapacity)
	if err != nil {
		return nil, apperrors.WrapError(err, "creating sequence cache")
	}
	defer func() {
		if cl, ok := cache.(interface{ Close() }); ok {
			cl.Close()
		}
	}()

	gen := aliquot.NewGenerator[T](cache, cfg, log)
	results := make([]aliquot.Result, len(seeds))
	updates := make(chan Update, workers*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, len(seeds), out)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, seed := range seeds {
		idx, s := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			obs.SeedStarted()
			res := gen.Generate(T(s))
			results[idx] = res
			obs.SeedFinished(res.Classification)
			select {
			case updates <- Update{Index: idx, Seed: s, Classification: res.Classification}:
			case <-ctx.Done():
			}
			return nil
		})
	}

	runErr := g.Wait()
	close(updates)
	displayWg.Wait()

	if stats, ok := cache.(aliquot.CacheStats); ok {
		hits, misses := stats.Stats()
		obs.CacheStats(hits, misses)
		log.Debug("cache statistics",
			logging.Uint64("hits", hits),
			logging.Uint64("misses", misses))
	}

	if runErr != nil {
		return nil, runErr
	}
	return results, nil
}

// validateSeeds fails fast on seeds the generator has no semantics for:
// zero, and values outside the configured width.
func validateSeeds(seeds []uint64, w aliquot.Width) error {
	max := w.MaxValue()
	for i, s := range seeds {
		if s == 0 {
			return apperrors.ValidationError{
				Field:   "seeds",
				Message: "seed 0 has no aliquot sequence",
			}
		}
		if s > max {
			return apperrors.ValidationError{
				Field:   "seeds",
				Message: fmt.Sprintf("seed %d at index %d does not fit a %d-bit number", s, i, int(w)),
			}
		}
	}
	return nil
}
