// Package apperrors defines the application error types and the exit codes
// they map to. Engine failures arrive as *padic.OpError values and are
// reported with ExitErrorDomain; everything else is classified by type.
//
// All wrapping types implement Unwrap so errors.Is and errors.As see through
// them.
package apperrors
