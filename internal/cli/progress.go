package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/aliquot/internal/orchestration"
)

// spinnerInterval is the frame interval of the progress spinner.
const spinnerInterval = 100 * time.Millisecond

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It shows a spinner with a completed/total counter while seeds are
// being evaluated.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner with a completion counter for an
// ongoing batch. It runs until the update channel is closed.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.Update, total int, out io.Writer) {
	DisplayProgress(wg, updates, total, out)
}

// DisplayProgress consumes per-seed completion updates and renders a spinner
// with a "done/total" suffix.
func DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.Update, total int, out io.Writer) {
	defer wg.Done()

	s := spinner.New(spinner.CharSets[14], spinnerInterval, spinner.WithWriter(out))
	s.Suffix = fmt.Sprintf(" classifying sequences... 0/%d", total)
	s.Start()
	defer s.Stop()

	done := 0
	for range updates {
		done++
		s.Suffix = fmt.Sprintf(" classifying sequences... %d/%d", done, total)
	}
}
