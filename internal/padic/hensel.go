package padic

import (
	"fmt"
	"math/big"
)

// Sqrt returns a square root of x, found modulo p and lifted digit by digit
// with Hensel's lemma. x must have even valuation and a unit that is a
// quadratic residue modulo p (modulo 8 when p = 2).
//
// For odd p the root keeps the relative precision of x; for p = 2 one
// digit is lost because r and r + 2^(n-1) have equal squares modulo 2^n.
func Sqrt(x *Number) (*Number, error) {
	ctx := x.ctx
	z := x.result()
	if x.IsZero() {
		z.setZero((x.prec + 1) / 2)
		return z, nil
	}
	if x.val%2 != 0 {
		return nil, opError("sqrt", ErrDomain, fmt.Sprintf("valuation %d is odd", x.val))
	}
	half := x.val / 2
	rel := x.relPrec()

	if ctx.prime.Cmp(bigTwo) == 0 {
		r, err := sqrtUnit2(x.unit, rel)
		if err != nil {
			return nil, err
		}
		return z.setCanonical(r, half, min(x.prec, half+rel-1)), nil
	}

	if !ctx.prime.ProbablyPrime(20) {
		return nil, opError("sqrt", ErrDomain, fmt.Sprintf("modulus %s is not prime", ctx.prime))
	}
	u0 := new(big.Int).Mod(x.unit, ctx.prime)
	r := new(big.Int).ModSqrt(u0, ctx.prime)
	if r == nil {
		return nil, opError("sqrt", ErrDomain, fmt.Sprintf("unit %s is not a square modulo %s", x.unit, ctx.prime))
	}

	// Newton step r <- r - (r^2 - u) / 2r doubles the number of correct digits.
	f := new(big.Int)
	for k := 1; k < rel; {
		k = min(2*k, rel)
		mod := ctx.pow(k)
		inv := new(big.Int).ModInverse(new(big.Int).Lsh(r, 1), mod)
		f.Mul(r, r).Sub(f, x.unit).Mul(f, inv)
		r.Sub(r, f).Mod(r, mod)
	}
	return z.setCanonical(r, half, min(x.prec, half+rel)), nil
}

// sqrtUnit2 returns r with r^2 = u modulo 2^n, for odd u.
func sqrtUnit2(u *big.Int, n int) (*big.Int, error) {
	need := min(n, 3)
	mask := new(big.Int).Lsh(bigOne, uint(need))
	mask.Sub(mask, bigOne)
	if new(big.Int).And(u, mask).Cmp(bigOne) != 0 {
		return nil, opError("sqrt", ErrDomain, fmt.Sprintf("unit %s is not 1 modulo %d", u, 1<<need))
	}
	r := big.NewInt(1)
	f := new(big.Int)
	for i := 3; i < n; i++ {
		f.Mul(r, r).Sub(f, u)
		if f.Bit(i) != 0 {
			r.SetBit(r, i-1, 1)
		}
	}
	return r, nil
}

// Teichmuller returns the Teichmuller lift of x: the (p-1)-th root of unity
// congruent to x modulo p. It is zero when x has positive valuation.
func Teichmuller(x *Number) (*Number, error) {
	if x.val < 0 {
		return nil, opError("teichmuller", ErrDomain, fmt.Sprintf("valuation %d is negative", x.val))
	}
	z := x.result()
	if x.IsZero() || x.val > 0 {
		z.setZero(x.prec)
		return z, nil
	}
	ctx := x.ctx
	mod := ctx.pow(x.prec)
	y := new(big.Int).Mod(x.unit, ctx.prime)
	// Each y <- y^p fixes one more digit of the root of unity.
	for i := 1; i < x.prec; i++ {
		y.Exp(y, ctx.prime, mod)
	}
	return z.setCanonical(y, 0, x.prec), nil
}
