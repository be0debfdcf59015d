package orchestration

import (
	"time"
)

// ProgressAggregator turns per-prime completion updates into an overall
// fraction and an ETA. The CLI spinner uses it to label batch runs.
type ProgressAggregator struct {
	total     int
	completed int
	failed    int
	start     time.Time
	now       func() time.Time
}

// NewProgressAggregator creates an aggregator for total evaluations.
// Returns nil if total <= 0.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total <= 0 {
		return nil
	}
	return &ProgressAggregator{total: total, start: time.Now(), now: time.Now}
}

// AggregatedProgress holds the state after processing one update.
type AggregatedProgress struct {
	// Index is the position of the prime that finished.
	Index int
	// Prime is the decimal prime that finished.
	Prime string
	// Completed and Failed count finished evaluations so far.
	Completed int
	Failed    int
	// Fraction is Completed / total, between 0 and 1.
	Fraction float64
	// ETA extrapolates the remaining time from the mean time per completed
	// evaluation. It is zero until the first update and once all are done.
	ETA time.Duration
}

// Update records a finished evaluation and returns the aggregated state.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	if a.completed < a.total {
		a.completed++
	}
	if update.Failed {
		a.failed++
	}
	return AggregatedProgress{
		Index:     update.Index,
		Prime:     update.Prime,
		Completed: a.completed,
		Failed:    a.failed,
		Fraction:  a.Fraction(),
		ETA:       a.ETA(),
	}
}

// Fraction returns the fraction of completed evaluations.
func (a *ProgressAggregator) Fraction() float64 {
	return float64(a.completed) / float64(a.total)
}

// ETA returns the current estimate of the remaining time.
func (a *ProgressAggregator) ETA() time.Duration {
	if a.completed == 0 || a.completed >= a.total {
		return 0
	}
	perItem := a.now().Sub(a.start) / time.Duration(a.completed)
	return perItem * time.Duration(a.total-a.completed)
}

// Total returns the number of evaluations being tracked.
func (a *ProgressAggregator) Total() int {
	return a.total
}

// IsBatch reports whether more than one evaluation is tracked.
func (a *ProgressAggregator) IsBatch() bool {
	return a.total > 1
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
