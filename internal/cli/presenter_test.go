package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/agbru/aliquot/internal/aliquot"
	"github.com/agbru/aliquot/internal/orchestration"
)

func classify(t *testing.T, seed uint64) aliquot.Result {
	t.Helper()
	results, err := orchestration.Run(context.Background(), []uint64{seed}, aliquot.NewConfig(aliquot.Width64, 0, 0), 1)
	if err != nil {
		t.Fatalf("Run(%d): %v", seed, err)
	}
	return results[0]
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		seed uint64
		want string
	}{
		{6, "6: Perfect number 6"},
		{43, "43: Prime number 43, 1"},
		{12, "12: Convergent sequence [12, 16, 15, 9, 4, 3, 1]"},
		{220, "220: Amicable number 220, 284"},
		{95, "95: Aspiring number [95, 25, 6]"},
	}

	var p Presenter
	for _, tt := range tests {
		if got := p.FormatResult(classify(t, tt.seed)); got != tt.want {
			t.Errorf("FormatResult(%d) = %q, want %q", tt.seed, got, tt.want)
		}
	}
}

func TestFormatResultLengthsOnly(t *testing.T) {
	p := Presenter{LengthsOnly: true}

	tests := []struct {
		seed uint64
		want string
	}{
		{6, "6 1"},
		{43, "43 2"},
		{12, "12 7"},
		{220, "220 2"},
	}
	for _, tt := range tests {
		if got := p.FormatResult(classify(t, tt.seed)); got != tt.want {
			t.Errorf("FormatResult(%d) = %q, want %q", tt.seed, got, tt.want)
		}
	}
}

func TestPresentResults(t *testing.T) {
	var buf bytes.Buffer
	results := []aliquot.Result{classify(t, 6), classify(t, 28)}

	Presenter{}.PresentResults(results, &buf)

	want := "6: Perfect number 6\n28: Perfect number 28\n"
	if buf.String() != want {
		t.Errorf("PresentResults output = %q, want %q", buf.String(), want)
	}
}

func TestFormatSum(t *testing.T) {
	if got := FormatSum(220, 284); got != "220 284" {
		t.Errorf("FormatSum(220, 284) = %q, want %q", got, "220 284")
	}
}

func TestDisplayProgressDrainsUpdates(t *testing.T) {
	updates := make(chan orchestration.Update)
	var wg sync.WaitGroup
	var buf bytes.Buffer

	wg.Add(1)
	go DisplayProgress(&wg, updates, 3, &buf)

	for i := 0; i < 3; i++ {
		updates <- orchestration.Update{Index: i, Seed: uint64(i + 2)}
	}
	close(updates)
	wg.Wait()
}

func TestCLIProgressReporterImplementsInterface(t *testing.T) {
	var reporter orchestration.ProgressReporter = CLIProgressReporter{}

	updates := make(chan orchestration.Update, 1)
	updates <- orchestration.Update{Index: 0, Seed: 6, Classification: aliquot.PerfectNumber}
	close(updates)

	var wg sync.WaitGroup
	var buf bytes.Buffer
	wg.Add(1)
	reporter.DisplayProgress(&wg, updates, 1, &buf)
	wg.Wait()
}
