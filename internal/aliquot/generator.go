package aliquot

import (
	"github.com/agbru/aliquot/internal/logging"
)

// state enumerates the phases of a single generation step. Running continues
// the loop; every other state resolves to a terminal classification.
type state int

const (
	stateRunning state = iota
	stateHitFixpoint
	stateHitOne
	stateHitCycle
	stateHitThresholdOrOverflow
)

// Generator drives seeds through repeated application of the aliquot map and
// classifies the long-run behavior of each sequence. A Generator holds no
// per-seed state; Generate may be called concurrently from multiple
// goroutines sharing the same cache.
type Generator[T Number] struct {
	cache     SequenceCache
	maxValue  uint64
	maxSeqLen int
	log       logging.Logger
}

// NewGenerator returns a Generator using the given shared cache and
// configuration. The logger receives debug-level step events; pass a
// zerolog.Nop-backed logger to silence them.
func NewGenerator[T Number](cache SequenceCache, cfg Config, log logging.Logger) *Generator[T] {
	return &Generator[T]{
		cache:     cache,
		maxValue:  cfg.maxValue(),
		maxSeqLen: cfg.maxSeqLen(),
		log:       log,
	}
}

// Generate computes and classifies the aliquot sequence of seed.
//
// Each step takes the last trace element cur, obtains next as the aliquot
// sum of cur (preferring a cache hit over recomputation), then applies the
// termination checks in fixed order: overflow/threshold, fixpoint, terminal
// one, cycle. The order makes classifications unambiguous: a perfect number
// reached on any path is reported perfect or aspiring, never as a cycle.
//
// Overflow and threshold breaches are not errors; they resolve to the
// Unknown classification. Seeds of 0 and 1 have no aliquot semantics and are
// Unknown as well (callers reject 0 at the API boundary).
func (g *Generator[T]) Generate(seed T) Result {
	trace := []T{seed}
	if seed <= 1 {
		return newResult(Unknown, trace, -1)
	}

	// Per-sequence membership index for O(1) cycle checks. Deliberately
	// separate from the shared cache: cycle detection is a property of this
	// trace alone.
	index := map[T]int{seed: 0}

	for len(trace) < g.maxSeqLen {
		cur := trace[len(trace)-1]
		next, st := g.step(cur)
		if st == stateRunning {
			if _, dup := index[next]; dup {
				st = stateHitCycle
			}
		}

		switch st {
		case stateHitThresholdOrOverflow:
			g.log.Debug("sequence aborted",
				logging.Uint64("seed", uint64(seed)),
				logging.Int("len", len(trace)))
			return newResult(Unknown, trace, -1)

		case stateHitFixpoint:
			// cur is a perfect number. A length-1 trace means the seed
			// itself is perfect; anything longer reached it.
			if len(trace) == 1 {
				return newResult(PerfectNumber, trace, -1)
			}
			return newResult(AspiringNumber, trace, -1)

		case stateHitOne:
			// cur's only proper divisor is 1, i.e. cur is prime.
			prime := len(trace) == 1
			trace = append(trace, 1)
			if prime {
				return newResult(PrimeNumber, trace, -1)
			}
			return newResult(Convergent, trace, -1)

		case stateHitCycle:
			first := index[next]
			if first == 0 {
				// The cycle starts at the seed; its distinct elements are
				// the whole trace.
				if len(trace) == 2 {
					return newResult(AmicableNumber, trace, -1)
				}
				return newResult(SociableNumber, trace, -1)
			}
			return newResult(IntoCycle, trace, first)
		}

		index[next] = len(trace)
		trace = append(trace, next)
	}

	g.log.Debug("sequence exceeded maximum length",
		logging.Uint64("seed", uint64(seed)),
		logging.Int("len", len(trace)))
	return newResult(Unknown, trace, -1)
}

// step produces the successor of cur and the resulting state transition for
// the checks that depend solely on cur and next. The cycle check consults
// the per-sequence index, so Generate applies it after step returns
// stateRunning; the fixed order of checks is preserved because fixpoint and
// terminal-one take precedence here.
func (g *Generator[T]) step(cur T) (T, state) {
	next, ok := g.lookupOrCompute(cur)
	if !ok || uint64(next) > g.maxValue {
		return 0, stateHitThresholdOrOverflow
	}
	if next == cur {
		return next, stateHitFixpoint
	}
	if next == 1 {
		return next, stateHitOne
	}
	return next, stateRunning
}

// lookupOrCompute obtains the aliquot sum of cur, consulting the shared
// cache first and recording fresh computations. The ok result is false when
// the sum overflowed the configured width.
func (g *Generator[T]) lookupOrCompute(cur T) (T, bool) {
	if v, hit := g.cache.Lookup(uint64(cur)); hit {
		return T(v), true
	}
	next, err := AliquotSum(cur)
	if err != nil {
		return 0, false
	}
	g.cache.Record(uint64(cur), uint64(next))
	return next, true
}
