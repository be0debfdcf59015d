package padic

import (
	"fmt"
	"math/big"
)

// Number is a p-adic number unit * p^valuation known modulo p^precision.
//
// The zero value is not usable; create numbers with NewNumber, NewNumberPrec
// or one of the From* constructors. Arithmetic methods return new numbers;
// only the Set* methods modify the receiver.
type Number struct {
	ctx *Context
	// unit is coprime to p and lies in [0, p^(prec-val)); zero for the zero element.
	unit *big.Int
	// val is the valuation; equal to prec for the zero element.
	val  int
	prec int
	// fixedPrec is set when the precision was chosen explicitly at construction
	// and must survive Set*.
	fixedPrec bool
}

// NewNumber returns the zero element of ctx at the context precision.
func NewNumber(ctx *Context) *Number {
	x := &Number{ctx: ctx, unit: new(big.Int)}
	x.setZero(ctx.precision)
	return x
}

// NewNumberPrec returns the zero element of ctx at an explicit precision.
// Later calls to Set* keep that precision instead of the context default.
func NewNumberPrec(ctx *Context, prec int) (*Number, error) {
	if prec < 0 {
		return nil, opError("new", ErrInvalidPrecision, fmt.Sprintf("precision %d is negative", prec))
	}
	x := &Number{ctx: ctx, unit: new(big.Int), fixedPrec: true}
	x.setZero(prec)
	return x, nil
}

// FromInt64 returns v as a p-adic number at the context precision.
func FromInt64(ctx *Context, v int64) *Number { return NewNumber(ctx).SetInt64(v) }

// FromUint64 returns v as a p-adic number at the context precision.
func FromUint64(ctx *Context, v uint64) *Number { return NewNumber(ctx).SetUint64(v) }

// FromBigInt returns v as a p-adic number at the context precision.
func FromBigInt(ctx *Context, v *big.Int) *Number { return NewNumber(ctx).SetBigInt(v) }

// SetInt64 sets x to v and returns x.
func (x *Number) SetInt64(v int64) *Number { return x.SetBigInt(big.NewInt(v)) }

// SetUint64 sets x to v and returns x.
func (x *Number) SetUint64(v uint64) *Number { return x.SetBigInt(new(big.Int).SetUint64(v)) }

// SetBigInt sets x to v and returns x. The maximal power of p dividing v
// becomes the valuation; negative values are reduced into the canonical
// non-negative range.
func (x *Number) SetBigInt(v *big.Int) *Number {
	x.resetPrecision()
	return x.setCanonical(new(big.Int).Set(v), 0, x.prec)
}

// SetRat sets x to the rational r and returns x. A denominator divisible by
// p gives a negative valuation. It fails only when the denominator has no
// inverse, which can happen for a composite modulus.
func (x *Number) SetRat(r *big.Rat) (*Number, error) {
	x.resetPrecision()
	num := new(big.Int).Set(r.Num())
	if num.Sign() == 0 {
		x.setZero(x.prec)
		return x, nil
	}
	den := new(big.Int).Set(r.Denom())
	val := removeFactor(num, x.ctx.prime) - removeFactor(den, x.ctx.prime)
	if val >= x.prec {
		x.setZero(x.prec)
		return x, nil
	}
	mod := x.ctx.pow(x.prec - val)
	inv := new(big.Int).ModInverse(den, mod)
	if inv == nil {
		return nil, opError("set", ErrDivisionByZero, fmt.Sprintf("denominator %s is a zero divisor modulo %s", r.Denom(), x.ctx.prime))
	}
	num.Mul(num, inv)
	return x.setCanonical(num.Mod(num, mod), val, x.prec), nil
}

// Set sets x to y, including its precision and whether that precision is
// fixed, and returns x.
func (x *Number) Set(y *Number) *Number {
	x.ctx = y.ctx
	x.unit = new(big.Int).Set(y.unit)
	x.val = y.val
	x.prec = y.prec
	x.fixedPrec = y.fixedPrec
	return x
}

// Clone returns an independent copy of x.
func (x *Number) Clone() *Number {
	return &Number{ctx: x.ctx, unit: new(big.Int).Set(x.unit), val: x.val, prec: x.prec, fixedPrec: x.fixedPrec}
}

// AtPrecision returns x at precision n. Lowering the precision drops digits;
// raising it lifts the stored representative, which is taken as exact.
func (x *Number) AtPrecision(n int) (*Number, error) {
	if n < 0 {
		return nil, opError("precision", ErrInvalidPrecision, fmt.Sprintf("precision %d is negative", n))
	}
	z := &Number{ctx: x.ctx, unit: new(big.Int)}
	if x.IsZero() {
		z.setZero(n)
		return z, nil
	}
	return z.setCanonical(new(big.Int).Set(x.unit), x.val, n), nil
}

// Context returns the context x is bound to.
func (x *Number) Context() *Context { return x.ctx }

// Prime returns a copy of the prime of x's context.
func (x *Number) Prime() *big.Int { return x.ctx.Prime() }

// Precision returns the absolute precision: x is known modulo p^Precision().
func (x *Number) Precision() int { return x.prec }

// Valuation returns the p-adic valuation. For zero it equals the precision.
func (x *Number) Valuation() int { return x.val }

// Unit returns a copy of the unit part.
func (x *Number) Unit() *big.Int { return new(big.Int).Set(x.unit) }

// IsZero reports whether x is zero at its precision.
func (x *Number) IsZero() bool { return x.unit.Sign() == 0 }

// IsOne reports whether x is one at its precision.
func (x *Number) IsOne() bool { return x.val == 0 && x.unit.Cmp(bigOne) == 0 }

// Equal reports whether x and y have the same prime, precision and digits.
func (x *Number) Equal(y *Number) bool {
	return x.ctx.SamePrime(y.ctx) && x.prec == y.prec && x.val == y.val && x.unit.Cmp(y.unit) == 0
}

// Int returns the integer unit * p^valuation. It reports false when the
// valuation is negative and no integer representative exists.
func (x *Number) Int() (*big.Int, bool) {
	if x.IsZero() {
		return new(big.Int), true
	}
	if x.val < 0 {
		return nil, false
	}
	return new(big.Int).Mul(x.unit, x.ctx.pow(x.val)), true
}

// Rat returns the exact rational unit * p^valuation.
func (x *Number) Rat() *big.Rat {
	if x.val >= 0 || x.IsZero() {
		n, _ := x.Int()
		return new(big.Rat).SetInt(n)
	}
	return new(big.Rat).SetFrac(x.unit, x.ctx.pow(-x.val))
}

// relPrec returns the number of significant digits.
func (x *Number) relPrec() int { return x.prec - x.val }

func (x *Number) resetPrecision() {
	if !x.fixedPrec {
		x.prec = x.ctx.precision
	}
}

func (x *Number) setZero(prec int) {
	x.unit = new(big.Int)
	x.val = prec
	x.prec = prec
}

// setCanonical sets x to value * p^val at precision prec, factoring any
// further powers of p out of value. value is consumed.
func (x *Number) setCanonical(value *big.Int, val, prec int) *Number {
	if value.Sign() == 0 {
		x.setZero(prec)
		return x
	}
	val += removeFactor(value, x.ctx.prime)
	if val >= prec {
		x.setZero(prec)
		return x
	}
	x.unit = value.Mod(value, x.ctx.pow(prec-val))
	x.val = val
	x.prec = prec
	return x
}

// removeFactor divides v by the largest power of p dividing it and returns
// the exponent. v must not be zero.
func removeFactor(v, p *big.Int) int {
	var q, r big.Int
	n := 0
	for {
		q.QuoRem(v, p, &r)
		if r.Sign() != 0 {
			return n
		}
		v.Set(&q)
		n++
	}
}

// valuationOf returns v_p(k) for k > 0.
func valuationOf(k int64, p *big.Int) int {
	return removeFactor(big.NewInt(k), p)
}
