// Package orchestration evaluates a p-adic request in one or more fields
// concurrently and aggregates the outcomes. It decouples evaluation from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
