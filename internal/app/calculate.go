package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/padicalc/internal/cli"
	apperrors "github.com/agbru/padicalc/internal/errors"
	"github.com/agbru/padicalc/internal/logging"
	"github.com/agbru/padicalc/internal/metrics"
	"github.com/agbru/padicalc/internal/orchestration"
	"github.com/agbru/padicalc/internal/ui"
)

// runCalculate evaluates the configured request in every requested field and
// reports the results.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	primes, err := orchestration.PrimesToRun(a.Config)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	req, err := orchestration.NewRequest(a.Config)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	modes, err := a.Config.PrintModes()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, len(primes), out)
	}

	// The spinner only makes sense for batches written to a terminal user.
	var progressReporter orchestration.ProgressReporter = orchestration.NullProgressReporter{}
	progressOut := io.Discard
	if !a.Config.Quiet && len(primes) > 1 {
		progressReporter = cli.CLIProgressReporter{}
		progressOut = out
	}

	m := metrics.New()
	a.logger.Debug("evaluation started",
		logging.String("op", req.Op),
		logging.Int("fields", len(primes)),
		logging.Int("precision", req.Precision),
		logging.Int("extended", req.Extended),
		logging.Bool("verify", req.Verify),
		logging.String("timeout", a.Config.Timeout.String()))

	results := orchestration.ExecuteEvaluations(ctx, primes, req, a.Tester, progressReporter, m, progressOut)
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		msg := "evaluation failed"
		if apperrors.IsContextError(res.Err) {
			msg = "evaluation interrupted"
		}
		a.logger.Error(msg, res.Err,
			logging.String("prime", res.Prime.String()),
			logging.String("kind", metrics.ErrorKind(res.Err)))
	}

	presOpts := orchestration.PresentationOptions{
		Op:       req.Op,
		Exponent: req.Exponent,
		Modes:    modes,
		Digits:   a.Config.Digits,
		Verbose:  a.Config.Verbose,
		Quiet:    a.Config.Quiet,
	}
	exitCode := orchestration.AnalyzeResults(results, presOpts, cli.CLIResultPresenter{}, out)

	if a.Config.OutputFile != "" {
		if err := cli.WriteResultsToFile(a.Config.OutputFile, results, presOpts); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving results: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "%sResults saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), a.Config.OutputFile, ui.ColorReset())
		}
	}

	if a.Config.MetricsFile != "" {
		if err := m.WriteTextfile(a.Config.MetricsFile); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		a.logger.Info("metrics written", logging.String("path", a.Config.MetricsFile))
	}

	return exitCode
}
