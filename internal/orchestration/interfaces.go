package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/padicalc/internal/padic"
)

// ProgressUpdate reports that the evaluation at Index has finished.
type ProgressUpdate struct {
	// Index is the position of the prime in the evaluated list.
	Index int
	// Prime is the decimal prime of the finished field.
	Prime string
	// Failed is true when the evaluation returned an error.
	Failed bool
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Op string
	// Exponent labels pow results.
	Exponent int64
	Modes    []padic.PrintMode
	Digits   bool
	Verbose  bool
	Quiet    bool
}

// ProgressReporter displays evaluation progress. This interface keeps the
// orchestration layer independent of spinners and terminals.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and for single evaluations.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents evaluation results.
type ResultPresenter interface {
	// PresentResult displays the outcome of one field.
	PresentResult(res Result, opts PresentationOptions, out io.Writer)
	// PresentSummary displays a one-line-per-prime table after a batch.
	PresentSummary(results []Result, out io.Writer)
}

// Observer receives the outcome of every evaluation, typically to update
// metrics. *metrics.Metrics implements it.
type Observer interface {
	ObserveOperation(op string, precision int, elapsed time.Duration)
	ObserveError(err error)
}
