package cli

import (
	"io"
	"sync"

	"github.com/agbru/padicalc/internal/orchestration"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress forwards to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResult displays one field with DisplayResult.
func (CLIResultPresenter) PresentResult(res orchestration.Result, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(out, res, opts)
	if !opts.Quiet {
		io.WriteString(out, "\n")
	}
}

// PresentSummary displays the batch table with DisplaySummary.
func (CLIResultPresenter) PresentSummary(results []orchestration.Result, out io.Writer) {
	DisplaySummary(out, results)
}
