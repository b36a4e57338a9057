// Package aliquot implements the aliquot sequence core: the divisor-sum
// engine, the bounded memo cache shared across sequences, and the generator
// that drives a seed through repeated application of the aliquot map and
// classifies the long-run behavior of the resulting sequence.
//
// The aliquot sequence of n repeatedly replaces n with the sum of its proper
// divisors. Sequences may reach a fixpoint (perfect numbers), descend to 1
// through a prime, close into a cycle (amicable pairs, sociable cycles), or
// grow without a detected bound, in which case classification is abandoned
// as Unknown rather than pursued indefinitely.
package aliquot
