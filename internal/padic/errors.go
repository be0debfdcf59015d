package padic

import "errors"

// Error kinds reported by the engine. Every error returned by this package
// wraps exactly one of them, so callers can test with errors.Is.
var (
	// ErrInvalidPrime is returned when a context is created with a prime <= 1.
	ErrInvalidPrime = errors.New("invalid prime")
	// ErrInvalidPrecision is returned for negative precisions and for an
	// extended precision below the working precision.
	ErrInvalidPrecision = errors.New("invalid precision")
	// ErrContextMismatch is returned when operands belong to different primes.
	ErrContextMismatch = errors.New("context mismatch")
	// ErrDivisionByZero is returned when dividing by the zero element, or by
	// a unit that has no inverse modulo a composite p.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain is returned when an analytic function is called outside the
	// region where its series converges.
	ErrDomain = errors.New("argument outside domain")
	// ErrPrecisionExhausted is returned when the precision surviving an
	// operation would be negative.
	ErrPrecisionExhausted = errors.New("precision exhausted")
	// ErrSyntax is returned by the decoder for malformed text.
	ErrSyntax = errors.New("invalid syntax")
)

// OpError records the operation that failed together with the error kind.
type OpError struct {
	// Op names the failing operation, e.g. "log" or "div".
	Op string
	// Err is one of the package error kinds.
	Err error
	// Detail carries the offending values, if any.
	Detail string
}

func (e *OpError) Error() string {
	msg := "padic: " + e.Op + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the error kind.
func (e *OpError) Unwrap() error { return e.Err }

func opError(op string, kind error, detail string) error {
	return &OpError{Op: op, Err: kind, Detail: detail}
}
