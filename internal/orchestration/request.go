package orchestration

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/padicalc/internal/config"
	apperrors "github.com/agbru/padicalc/internal/errors"
	"github.com/agbru/padicalc/internal/padic"
	"github.com/agbru/padicalc/internal/primality"
)

var tracer = otel.Tracer("github.com/agbru/padicalc/internal/orchestration")

// Request describes an evaluation independently of the prime it runs in.
type Request struct {
	// X and Y are operands in padic.Parse syntax. Y is unused by unary
	// operations and by pow.
	X, Y string
	// Exponent is the integer exponent of pow.
	Exponent int64
	// Op names the operation, one of config.Operations.
	Op string
	// Precision and Extended configure the context of every field.
	Precision int
	Extended  int
	// Verify cross-checks the Series and Terse renderings of the result.
	Verify bool
	// Timeout is the limit reported when the run deadline expires.
	Timeout time.Duration
}

// NewRequest builds a Request from a validated configuration.
func NewRequest(cfg config.AppConfig) (Request, error) {
	req := Request{
		X:         cfg.X,
		Y:         cfg.Y,
		Op:        cfg.Op,
		Precision: cfg.Precision,
		Extended:  cfg.ExtendedPrecision(),
		Verify:    cfg.Verify,
		Timeout:   cfg.Timeout,
	}
	if _, ok := operations[req.Op]; !ok {
		return Request{}, apperrors.NewConfigError("unknown operation %q", req.Op)
	}
	if req.Op == "pow" {
		e, err := strconv.ParseInt(cfg.Y, 10, 64)
		if err != nil {
			return Request{}, apperrors.ValidationError{Field: "y", Message: fmt.Sprintf("exponent %q is not an integer", cfg.Y)}
		}
		req.Exponent = e
	}
	return req, nil
}

// Result is the outcome of a Request in one field.
type Result struct {
	// Prime is the prime of the field.
	Prime *big.Int
	// IsPrime is the answer of the primality oracle for Prime.
	IsPrime bool
	// X and Y are the decoded operands. Y is nil for unary operations.
	X, Y *padic.Number
	// Value is the result of the operation, nil on error.
	Value    *padic.Number
	Duration time.Duration
	Err      error
}

type operation struct {
	binary bool
	apply  func(x, y *padic.Number, e int64) (*padic.Number, error)
}

var operations = map[string]operation{
	"none": {apply: func(x, _ *padic.Number, _ int64) (*padic.Number, error) { return x, nil }},
	"add":  {binary: true, apply: func(x, y *padic.Number, _ int64) (*padic.Number, error) { return x.Add(y) }},
	"sub":  {binary: true, apply: func(x, y *padic.Number, _ int64) (*padic.Number, error) { return x.Sub(y) }},
	"mul":  {binary: true, apply: func(x, y *padic.Number, _ int64) (*padic.Number, error) { return x.Mul(y) }},
	"div":  {binary: true, apply: func(x, y *padic.Number, _ int64) (*padic.Number, error) { return x.Div(y) }},
	"neg":  {apply: func(x, _ *padic.Number, _ int64) (*padic.Number, error) { return x.Neg(), nil }},
	"inv":  {apply: func(x, _ *padic.Number, _ int64) (*padic.Number, error) { return x.Inv() }},
	"pow":  {apply: func(x, _ *padic.Number, e int64) (*padic.Number, error) { return x.Pow(e) }},
	"log":  {apply: func(x, _ *padic.Number, _ int64) (*padic.Number, error) { return padic.Log(x) }},
	"exp":  {apply: func(x, _ *padic.Number, _ int64) (*padic.Number, error) { return padic.Exp(x) }},
	"sqrt": {apply: func(x, _ *padic.Number, _ int64) (*padic.Number, error) { return padic.Sqrt(x) }},
	"teichmuller": {apply: func(x, _ *padic.Number, _ int64) (*padic.Number, error) {
		return padic.Teichmuller(x)
	}},
}

// Evaluate runs req in the p-adic field of prime. Errors are returned in
// Result.Err wrapped in an apperrors.CalculationError naming the prime.
func Evaluate(ctx context.Context, prime *big.Int, req Request, tester primality.Tester) Result {
	ctx, span := tracer.Start(ctx, "padicalc.evaluate", trace.WithAttributes(
		attribute.String("padic.prime", prime.String()),
		attribute.String("padic.op", req.Op),
		attribute.Int("padic.precision", req.Precision),
	))
	defer span.End()

	start := time.Now()
	res := Result{Prime: new(big.Int).Set(prime), IsPrime: tester.IsPrime(prime)}
	err := evaluate(ctx, req, &res)
	res.Duration = time.Since(start)
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: req.Op, Limit: req.Timeout}
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		res.Err = apperrors.CalculationError{Prime: prime.String(), Cause: err}
		res.Value = nil
		return res
	}
	span.SetAttributes(attribute.Int("padic.result_precision", res.Value.Precision()))
	return res
}

func evaluate(ctx context.Context, req Request, res *Result) error {
	if err := contextErr(ctx); err != nil {
		return err
	}
	op, ok := operations[req.Op]
	if !ok {
		return apperrors.NewConfigError("unknown operation %q", req.Op)
	}
	pctx, err := padic.NewContext(res.Prime, padic.WithPrecision(req.Precision), padic.WithExtendedPrecision(req.Extended))
	if err != nil {
		return err
	}
	if res.X, err = padic.Parse(pctx, req.X); err != nil {
		return err
	}
	if op.binary {
		if res.Y, err = padic.Parse(pctx, req.Y); err != nil {
			return err
		}
	}
	if res.Value, err = op.apply(res.X, res.Y, req.Exponent); err != nil {
		return err
	}
	if req.Verify {
		return VerifyRoundTrip(res.Value)
	}
	return nil
}

// contextErr is ctx.Err, except that a deadline in the past is reported
// even before the context's timer has fired.
func contextErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return nil
}

// VerifyRoundTrip decodes the Series and Terse renderings of x at x's
// precision and returns an apperrors.MismatchError unless both give x back.
func VerifyRoundTrip(x *padic.Number) error {
	series, terse := x.Text(padic.Series), x.Text(padic.Terse)
	decode := func(s string) (*padic.Number, error) {
		n, err := padic.NewNumberPrec(x.Context(), x.Precision())
		if err != nil {
			return nil, err
		}
		return n.SetString(s)
	}
	fromSeries, err := decode(series)
	if err != nil {
		return apperrors.WrapError(err, "decoding series %q", series)
	}
	fromTerse, err := decode(terse)
	if err != nil {
		return apperrors.WrapError(err, "decoding terse %q", terse)
	}
	if !fromSeries.Equal(fromTerse) || !fromSeries.Equal(x) {
		return apperrors.MismatchError{Prime: x.Prime().String(), Series: series, Terse: terse}
	}
	return nil
}
