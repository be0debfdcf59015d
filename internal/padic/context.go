package padic

import (
	"fmt"
	"math/big"
)

// DefaultPrecision is the working precision of a context created without
// WithPrecision.
const DefaultPrecision = 20

// Context holds the parameters shared by a family of p-adic numbers: the
// prime p, the default precision N and the extended precision used by the
// analytic functions. A Context is read-only once created.
type Context struct {
	prime     *big.Int
	precision int
	extended  int
	// powers[i] = p^i for 0 <= i < len(powers).
	powers []*big.Int
}

// ContextOption configures a Context during construction.
type ContextOption func(*contextParams)

type contextParams struct {
	precision   int
	extended    int
	extendedSet bool
}

// WithPrecision sets the default working precision N.
func WithPrecision(n int) ContextOption {
	return func(p *contextParams) { p.precision = n }
}

// WithExtendedPrecision sets the extended precision E used as working room by
// Log and Exp. It defaults to the working precision.
func WithExtendedPrecision(n int) ContextOption {
	return func(p *contextParams) {
		p.extended = n
		p.extendedSet = true
	}
}

// NewContext creates a context for the given prime. The prime must be
// greater than one; whether it is actually prime is not checked here (see
// package primality). A composite modulus still works, but the resulting
// ring has zero divisors.
func NewContext(prime *big.Int, opts ...ContextOption) (*Context, error) {
	if prime == nil || prime.Cmp(bigOne) <= 0 {
		return nil, opError("context", ErrInvalidPrime, fmt.Sprintf("p = %v must be greater than 1", prime))
	}

	params := contextParams{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&params)
	}
	if !params.extendedSet {
		params.extended = params.precision
	}
	if params.precision < 0 {
		return nil, opError("context", ErrInvalidPrecision, fmt.Sprintf("precision %d is negative", params.precision))
	}
	if params.extended < params.precision {
		return nil, opError("context", ErrInvalidPrecision,
			fmt.Sprintf("extended precision %d is below precision %d", params.extended, params.precision))
	}

	ctx := &Context{
		prime:     new(big.Int).Set(prime),
		precision: params.precision,
		extended:  params.extended,
	}
	ctx.powers = make([]*big.Int, params.extended+2)
	ctx.powers[0] = big.NewInt(1)
	for i := 1; i < len(ctx.powers); i++ {
		ctx.powers[i] = new(big.Int).Mul(ctx.powers[i-1], ctx.prime)
	}
	return ctx, nil
}

// NewContextInt64 is a shorthand for NewContext with a machine-sized prime.
func NewContextInt64(prime int64, opts ...ContextOption) (*Context, error) {
	return NewContext(big.NewInt(prime), opts...)
}

// MustNewContext is like NewContextInt64 but panics on error.
func MustNewContext(prime int64, opts ...ContextOption) *Context {
	ctx, err := NewContextInt64(prime, opts...)
	if err != nil {
		panic(fmt.Sprintf("MustNewContext(%d) failed: %v", prime, err))
	}
	return ctx
}

// Prime returns a copy of p.
func (c *Context) Prime() *big.Int { return new(big.Int).Set(c.prime) }

// Precision returns the default working precision N.
func (c *Context) Precision() int { return c.precision }

// ExtendedPrecision returns the extended precision E.
func (c *Context) ExtendedPrecision() int { return c.extended }

// Pow returns a new big.Int holding p^n. n must not be negative.
func (c *Context) Pow(n int) *big.Int { return new(big.Int).Set(c.pow(n)) }

// SamePrime reports whether both contexts use the same prime. Numbers from
// such contexts can be combined.
func (c *Context) SamePrime(other *Context) bool {
	return c == other || c.prime.Cmp(other.prime) == 0
}

func (c *Context) String() string {
	return fmt.Sprintf("Q_%s (precision %d, extended %d)", c.prime, c.precision, c.extended)
}

// pow returns p^n, shared with the cache when possible. Callers must not
// modify the result.
func (c *Context) pow(n int) *big.Int {
	if n < 0 {
		panic(fmt.Sprintf("padic: negative power %d", n))
	}
	if n < len(c.powers) {
		return c.powers[n]
	}
	return new(big.Int).Exp(c.prime, big.NewInt(int64(n)), nil)
}

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)
