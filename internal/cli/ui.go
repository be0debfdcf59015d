//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/padicalc/internal/format"
	"github.com/agbru/padicalc/internal/orchestration"
)

const (
	// TruncationLimit is the length above which renderings are shortened in
	// tables and headers.
	TruncationLimit = 100
	// DisplayEdges is the number of characters kept at each end of a
	// truncated rendering.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner frame interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so progress display can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with a progress bar while a batch of
// fields is evaluated. It returns when progressChan is closed, after
// printing a completion line.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(total)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	start := time.Now()
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(FormatProgress(orchestration.AggregatedProgress{}, total))
	s.Start()

	var last orchestration.AggregatedProgress
	for update := range progressChan {
		last = agg.Update(update)
		s.UpdateSuffix(FormatProgress(last, total))
	}
	s.Stop()

	fmt.Fprintf(out, "Evaluated %d fields (%d failed) in %s.\n",
		last.Completed, last.Failed, format.FormatExecutionDuration(time.Since(start)))
}

// FormatProgress returns the spinner suffix for the aggregated state, e.g.
// " 3/10 █████████░░░░░░░░░░░░░░░░░░░░░  30% p = 5 ETA 12ms".
func FormatProgress(ap orchestration.AggregatedProgress, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %d/%d %s %3.0f%%", ap.Completed, total, progressBar(ap.Fraction, ProgressBarWidth), ap.Fraction*100)
	if ap.Prime != "" {
		fmt.Fprintf(&b, " p = %s", ap.Prime)
	}
	if ap.ETA > 0 {
		fmt.Fprintf(&b, " ETA %s", format.FormatExecutionDuration(ap.ETA))
	}
	return b.String()
}

// progressBar renders a bar of length characters filled to progress.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	return strings.Repeat("█", count) + strings.Repeat("░", length-count)
}
