// Package logging provides the logging interface used by padicalc. It hides
// the zerolog backend behind a small Logger interface so components log with
// typed fields and the level is chosen once, from --log-level.
package logging
