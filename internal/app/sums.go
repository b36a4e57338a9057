package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/agbru/aliquot/internal/aliquot"
	"github.com/agbru/aliquot/internal/cli"
	apperrors "github.com/agbru/aliquot/internal/errors"
	"github.com/agbru/aliquot/internal/parallel"
)

// runSums computes the aliquot sum of every configured seed without
// generating sequences. Sums are computed concurrently but printed in seed
// order.
func (a *Application) runSums(ctx context.Context, out io.Writer) int {
	seeds := a.Config.Seeds
	width := a.Config.Width
	sums := make([]uint64, len(seeds))

	var ec parallel.ErrorCollector
	var wg sync.WaitGroup
	sem := make(chan struct{}, a.Config.Workers)

	for i, seed := range seeds {
		if ctx.Err() != nil {
			ec.SetError(ctx.Err())
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, n uint64) {
			defer wg.Done()
			defer func() { <-sem }()
			sum, err := aliquot.SumForWidth(width, n)
			if err != nil {
				ec.SetError(err)
				return
			}
			sums[idx] = sum
		}(i, seed)
	}
	wg.Wait()

	if err := ec.Err(); err != nil {
		return a.handleSumError(err)
	}

	for i, seed := range seeds {
		fmt.Fprintln(out, cli.FormatSum(seed, sums[i]))
	}
	return apperrors.ExitSuccess
}

// handleSumError maps a sum-mode error to an exit code. Unlike sequence
// generation, sum-only mode reports overflow as a hard error: there is no
// classification to absorb it.
func (a *Application) handleSumError(err error) int {
	if apperrors.IsContextError(err) {
		fmt.Fprintln(a.ErrWriter, "Canceled.")
		return apperrors.ExitErrorCanceled
	}
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitErrorGeneric
}
