package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/padicalc/internal/errors"
	"github.com/agbru/padicalc/internal/primality"
)

// ExecuteEvaluations evaluates req in the field of every prime concurrently
// and returns the results in the order of primes.
//
// At most GOMAXPROCS evaluations run at once. Each evaluation owns its
// context and numbers, so nothing is shared between goroutines except the
// read-only request. Progress is reported once per finished prime; observer
// may be nil.
func ExecuteEvaluations(ctx context.Context, primes []*big.Int, req Request, tester primality.Tester,
	reporter ProgressReporter, observer Observer, out io.Writer,
) []Result {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	results := make([]Result, len(primes))
	// One update per prime: the buffer never blocks a worker.
	progressChan := make(chan ProgressUpdate, len(primes))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(primes), out)

	for i, p := range primes {
		g.Go(func() error {
			res := Evaluate(ctx, p, req, tester)
			results[i] = res
			if observer != nil {
				if res.Err != nil {
					observer.ObserveError(res.Err)
				} else {
					observer.ObserveOperation(req.Op, res.Value.Precision(), res.Duration)
				}
			}
			progressChan <- ProgressUpdate{Index: i, Prime: p.String(), Failed: res.Err != nil}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults presents every result, followed by a summary table when
// more than one field was evaluated, and returns the exit code of the
// run: success when every evaluation succeeded, otherwise the code of the
// first failure.
func AnalyzeResults(results []Result, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	var firstErr error
	failed := 0
	for _, res := range results {
		presenter.PresentResult(res, opts, out)
		if res.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = res.Err
			}
		}
	}
	if len(results) > 1 {
		presenter.PresentSummary(results, out)
		if !opts.Quiet {
			switch {
			case failed == 0:
				fmt.Fprintf(out, "\nGlobal Status: Success. %d fields evaluated.\n", len(results))
			case apperrors.IsContextError(firstErr):
				fmt.Fprintf(out, "\nGlobal Status: Interrupted. %d of %d fields did not complete.\n", failed, len(results))
			default:
				fmt.Fprintf(out, "\nGlobal Status: Failure. %d of %d fields failed.\n", failed, len(results))
			}
		}
	}
	return apperrors.ExitCodeFor(firstErr)
}
