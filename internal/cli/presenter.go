// Package cli renders results and progress for the command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/agbru/aliquot/internal/aliquot"
)

// Presenter writes classified results in the CLI's line-oriented format.
type Presenter struct {
	// LengthsOnly switches output to "seed length" lines.
	LengthsOnly bool
}

// PresentResults writes one line per result, in result order.
func (p Presenter) PresentResults(results []aliquot.Result, out io.Writer) {
	for _, r := range results {
		fmt.Fprintln(out, p.FormatResult(r))
	}
}

// FormatResult renders a single result.
//
// Default format: "220: Amicable number 220, 284". Sequences that ran into a
// foreign cycle render the prefix and the cycle separated by an arrow:
// "N: Convergent into cycle [a, b] -> [c, d, e]". With LengthsOnly the line
// is just "220 2".
func (p Presenter) FormatResult(r aliquot.Result) string {
	if p.LengthsOnly {
		return fmt.Sprintf("%d %d", r.Seed, r.Len())
	}
	return fmt.Sprintf("%d: %s %s", r.Seed, r.Classification, r.SeqString())
}

// FormatSum renders a sum-only line: the number followed by its aliquot sum.
func FormatSum(n, sum uint64) string {
	return fmt.Sprintf("%d %d", n, sum)
}
