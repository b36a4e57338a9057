package aliquot

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// naiveAliquotSum is the O(n) oracle: sum every divisor below n directly.
func naiveAliquotSum(n uint64) uint64 {
	var sum uint64
	for d := uint64(1); d < n; d++ {
		if n%d == 0 {
			sum += d
		}
	}
	return sum
}

// TestAliquotSum_MatchesOracle verifies the trial-division engine against
// the naive oracle over randomly drawn inputs.
func TestAliquotSum_MatchesOracle(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("engine agrees with naive divisor enumeration", prop.ForAll(
		func(n uint64) bool {
			got, err := AliquotSum(n)
			if err != nil {
				t.Logf("AliquotSum(%d) errored: %v", n, err)
				return false
			}
			return got == naiveAliquotSum(n)
		},
		gen.UInt64Range(1, 50_000),
	))

	properties.TestingRun(t)
}

// TestAliquotSum_SemiprimeIdentity verifies that for distinct primes p and q,
// the aliquot sum of p*q is 1 + p + q.
func TestAliquotSum_SemiprimeIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	primes := []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71}

	properties.Property("aliquot(p*q) == 1 + p + q for distinct primes", prop.ForAll(
		func(i, j int) bool {
			p, q := primes[i%len(primes)], primes[j%len(primes)]
			if p == q {
				return true
			}
			got, err := AliquotSum(p * q)
			if err != nil {
				return false
			}
			return got == 1+p+q
		},
		gen.IntRange(0, len(primes)-1),
		gen.IntRange(0, len(primes)-1),
	))

	properties.TestingRun(t)
}
