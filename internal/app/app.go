// Package app wires configuration, orchestration and presentation into the
// aliquot command-line application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/aliquot/internal/cli"
	"github.com/agbru/aliquot/internal/config"
	apperrors "github.com/agbru/aliquot/internal/errors"
	"github.com/agbru/aliquot/internal/format"
	"github.com/agbru/aliquot/internal/logging"
	"github.com/agbru/aliquot/internal/orchestration"
	"github.com/agbru/aliquot/internal/server"
)

// Application represents the aliquot application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Log       logging.Logger
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "aliquot"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		Log:       logging.NewLogger(errWriter, "aliquot"),
	}, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runID := uuid.NewString()
	a.Log.Debug("starting run",
		logging.String("run_id", runID),
		logging.Int("seeds", len(a.Config.Seeds)),
		logging.Int("workers", a.Config.Workers))

	if a.Config.SumOnly {
		return a.runSums(ctx, out)
	}
	return a.runGenerate(ctx, out)
}

// runGenerate classifies all configured seeds and prints the results.
func (a *Application) runGenerate(ctx context.Context, out io.Writer) int {
	metrics, stopMetrics := a.startMetricsServer(ctx)
	defer stopMetrics()

	var reporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		reporter = orchestration.NullProgressReporter{}
	} else {
		reporter = cli.CLIProgressReporter{}
	}

	start := time.Now()
	results, err := orchestration.ExecuteGenerations(
		ctx,
		a.Config.Seeds,
		a.Config.ToGenerationConfig(),
		a.Config.Workers,
		reporter,
		metrics,
		a.Log,
		progressOut,
	)
	if err != nil {
		return a.handleRunError(err)
	}

	presenter := cli.Presenter{LengthsOnly: a.Config.LengthsOnly}
	presenter.PresentResults(results, out)

	a.Log.Debug("run finished",
		logging.Int("results", len(results)),
		logging.String("elapsed", format.FormatExecutionDuration(time.Since(start))))
	return apperrors.ExitSuccess
}

// startMetricsServer starts the Prometheus endpoint when configured.
// It returns the observer to feed and a stop function.
func (a *Application) startMetricsServer(ctx context.Context) (orchestration.Observer, func()) {
	if a.Config.MetricsAddr == "" {
		return orchestration.NullObserver{}, func() {}
	}

	m := server.NewMetrics()
	srvCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.ListenAndServe(srvCtx, a.Config.MetricsAddr, m, a.Log); err != nil {
			a.Log.Error("metrics server failed", err)
		}
	}()
	return m, func() {
		cancel()
		<-done
	}
}

// handleRunError maps a run error to an exit code.
func (a *Application) handleRunError(err error) int {
	if apperrors.IsContextError(err) {
		fmt.Fprintln(a.ErrWriter, "Canceled.")
		return apperrors.ExitErrorCanceled
	}

	var configErr apperrors.ConfigError
	var validationErr apperrors.ValidationError
	if errors.As(err, &configErr) || errors.As(err, &validationErr) {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitErrorGeneric
}

// IsHelpError checks if the error is a help flag error (-h was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
