package padic

import (
	"fmt"
	"math/big"
)

// Add returns x + y at precision min(x.Precision(), y.Precision()).
func (x *Number) Add(y *Number) (*Number, error) { return x.addSub("add", y, false) }

// Sub returns x - y at precision min(x.Precision(), y.Precision()).
func (x *Number) Sub(y *Number) (*Number, error) { return x.addSub("sub", y, true) }

func (x *Number) addSub(op string, y *Number, negate bool) (*Number, error) {
	if err := x.compatible(op, y); err != nil {
		return nil, err
	}
	prec := min(x.prec, y.prec)

	// Align both operands on the smaller valuation. A zero operand carries
	// valuation == precision, so it aligns like any other number.
	v := min(x.val, y.val)
	a := new(big.Int).Mul(x.unit, x.ctx.pow(x.val-v))
	b := new(big.Int).Mul(y.unit, x.ctx.pow(y.val-v))
	if negate {
		a.Sub(a, b)
	} else {
		a.Add(a, b)
	}
	return x.result().setCanonical(a, v, prec), nil
}

// Mul returns x * y. The result precision is bounded by both operand
// precisions and by what the valuations of the operands justify.
func (x *Number) Mul(y *Number) (*Number, error) {
	if err := x.compatible("mul", y); err != nil {
		return nil, err
	}
	prec := min(x.prec, y.prec, x.prec+y.val, y.prec+x.val)
	if prec < 0 {
		return nil, exhausted("mul", prec)
	}
	u := new(big.Int).Mul(x.unit, y.unit)
	return x.result().setCanonical(u, x.val+y.val, prec), nil
}

// Div returns x / y. The unit of y is inverted modulo a power of p, which
// always succeeds for a prime p.
func (x *Number) Div(y *Number) (*Number, error) {
	if err := x.compatible("div", y); err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, opError("div", ErrDivisionByZero, "divisor is zero at precision "+fmt.Sprint(y.prec))
	}
	v := x.val - y.val
	prec := min(x.prec, y.prec, v+min(x.relPrec(), y.relPrec()))
	if prec < 0 {
		return nil, exhausted("div", prec)
	}
	z := x.result()
	if x.IsZero() || v >= prec {
		z.setZero(prec)
		return z, nil
	}
	mod := x.ctx.pow(prec - v)
	inv := new(big.Int).ModInverse(y.unit, mod)
	if inv == nil {
		return nil, opError("div", ErrDivisionByZero,
			fmt.Sprintf("unit %s is a zero divisor modulo %s", y.unit, x.ctx.prime))
	}
	inv.Mul(inv, x.unit)
	return z.setCanonical(inv.Mod(inv, mod), v, prec), nil
}

// Neg returns -x.
func (x *Number) Neg() *Number {
	z := x.result()
	if x.IsZero() {
		z.setZero(x.prec)
		return z
	}
	return z.setCanonical(new(big.Int).Neg(x.unit), x.val, x.prec)
}

// Inv returns 1 / x.
func (x *Number) Inv() (*Number, error) {
	one, err := NewNumberPrec(x.ctx, x.prec)
	if err != nil {
		return nil, err
	}
	z, err := one.SetInt64(1).Div(x)
	if err != nil {
		return nil, relabel(err, "inv")
	}
	return z, nil
}

// Pow returns x^e. Negative exponents invert x first; x^0 is one.
func (x *Number) Pow(e int64) (*Number, error) {
	if e == 0 {
		z := x.result()
		return z.setCanonical(big.NewInt(1), 0, x.prec), nil
	}
	if e < 0 {
		if e == -e {
			return nil, opError("pow", ErrPrecisionExhausted, "exponent out of range")
		}
		inv, err := x.Inv()
		if err != nil {
			return nil, relabel(err, "pow")
		}
		return inv.Pow(-e)
	}
	if x.IsZero() {
		z := x.result()
		z.setZero(x.prec)
		return z, nil
	}
	val := int64(x.val) * e
	if val/e != int64(x.val) || val > int64(maxInt32) || val < -int64(maxInt32) {
		return nil, opError("pow", ErrPrecisionExhausted, fmt.Sprintf("valuation of x^%d overflows", e))
	}
	prec := min(int64(x.prec), val+int64(x.relPrec()))
	if prec < 0 {
		return nil, exhausted("pow", int(prec))
	}
	z := x.result()
	if val >= prec {
		z.setZero(int(prec))
		return z, nil
	}
	u := new(big.Int).Exp(x.unit, big.NewInt(e), x.ctx.pow(int(prec-val)))
	return z.setCanonical(u, int(val), int(prec)), nil
}

// maxInt32 bounds valuations produced by Pow so they fit an int on every platform.
const maxInt32 = 1<<31 - 1

func (x *Number) compatible(op string, y *Number) error {
	if !x.ctx.SamePrime(y.ctx) {
		return opError(op, ErrContextMismatch, fmt.Sprintf("p = %s and p = %s", x.ctx.prime, y.ctx.prime))
	}
	return nil
}

// result returns an empty number bound to x's context.
func (x *Number) result() *Number {
	return &Number{ctx: x.ctx, unit: new(big.Int)}
}

func exhausted(op string, prec int) error {
	return opError(op, ErrPrecisionExhausted, fmt.Sprintf("result precision would be %d", prec))
}

// relabel replaces the operation name of an *OpError.
func relabel(err error, op string) error {
	if e, ok := err.(*OpError); ok {
		return &OpError{Op: op, Err: e.Err, Detail: e.Detail}
	}
	return err
}
