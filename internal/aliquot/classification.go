package aliquot

import (
	"fmt"
	"strings"
)

// Classification is the closed set of long-run behaviors an aliquot sequence
// can exhibit. Exactly one applies to a completed generation.
type Classification int

const (
	// Unknown marks a sequence whose behavior could not be resolved: a value
	// overflowed the configured width, exceeded the maximum-value threshold,
	// or the sequence outgrew the maximum trace length.
	Unknown Classification = iota
	// PerfectNumber marks a seed that is its own aliquot sum.
	PerfectNumber
	// PrimeNumber marks a prime seed; its sequence is [p, 1].
	PrimeNumber
	// Convergent marks a sequence that descends to 1 through a terminal prime.
	Convergent
	// AmicableNumber marks a seed in a two-element cycle.
	AmicableNumber
	// SociableNumber marks a seed in a cycle of three or more elements.
	SociableNumber
	// AspiringNumber marks a non-perfect seed whose sequence reaches a
	// perfect number.
	AspiringNumber
	// IntoCycle marks a sequence that enters a cycle not containing the seed.
	IntoCycle
)

// String returns the human-readable name of the classification.
func (c Classification) String() string {
	switch c {
	case PerfectNumber:
		return "Perfect number"
	case PrimeNumber:
		return "Prime number"
	case Convergent:
		return "Convergent sequence"
	case AmicableNumber:
		return "Amicable number"
	case SociableNumber:
		return "Sociable number"
	case AspiringNumber:
		return "Aspiring number"
	case IntoCycle:
		return "Convergent into cycle"
	default:
		return "Unknown sequence"
	}
}

// Cycles reports whether the classification implies the sequence ends in a
// cycle.
func (c Classification) Cycles() bool {
	switch c {
	case AmicableNumber, SociableNumber, IntoCycle:
		return true
	}
	return false
}

// Result is the immutable outcome of generating one seed's aliquot sequence.
// It is created by a single Generator invocation and never mutated afterward.
type Result struct {
	// Seed is the number the sequence was generated for.
	Seed uint64
	// Classification is the resolved long-run behavior.
	Classification Classification
	// trace is the full sequence, first element == Seed.
	trace []uint64
	// cycleStart is the index in trace where a cycle not containing the seed
	// begins, or -1 when the classification is not IntoCycle.
	cycleStart int
}

// newResult builds a Result from a generator trace of any supported width.
func newResult[T Number](class Classification, trace []T, cycleStart int) Result {
	out := make([]uint64, len(trace))
	for i, v := range trace {
		out[i] = uint64(v)
	}
	return Result{
		Seed:           out[0],
		Classification: class,
		trace:          out,
		cycleStart:     cycleStart,
	}
}

// Seq returns a copy of the full sequence in generation order.
func (r Result) Seq() []uint64 {
	out := make([]uint64, len(r.trace))
	copy(out, r.trace)
	return out
}

// Len returns the number of elements in the sequence.
func (r Result) Len() int {
	return len(r.trace)
}

// CycleStart returns the trace index where the entered cycle begins, or -1
// when the sequence did not run into a foreign cycle.
func (r Result) CycleStart() int {
	return r.cycleStart
}

// SeqString renders the sequence for display. Single-value and pair-shaped
// results (perfect, prime, amicable) print as bare comma-separated values;
// longer sequences print bracketed; into-cycle results print the prefix and
// the cycle separated by an arrow.
func (r Result) SeqString() string {
	switch r.Classification {
	case PerfectNumber, PrimeNumber, AmicableNumber:
		parts := make([]string, len(r.trace))
		for i, v := range r.trace {
			parts[i] = fmt.Sprintf("%d", v)
		}
		return strings.Join(parts, ", ")
	case IntoCycle:
		if r.cycleStart > 0 && r.cycleStart < len(r.trace) {
			return renderSeq(r.trace[:r.cycleStart]) + " -> " + renderSeq(r.trace[r.cycleStart:])
		}
	}
	return renderSeq(r.trace)
}

// renderSeq formats values as "[a, b, c]".
func renderSeq(vals []uint64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(']')
	return b.String()
}
