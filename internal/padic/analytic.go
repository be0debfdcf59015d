package padic

import (
	"fmt"
	"math/big"
)

// Log returns the p-adic logarithm of x, defined for units congruent to one
// modulo p. It sums log(1+u) = u - u^2/2 + u^3/3 - ... for u = x - 1.
//
// The stored representative of x is taken as exact, and the result carries
// min(2*N, max(E, N)) digits, where N is the precision of x and E the
// extended precision of its context. Terms are accumulated modulo p^W with
// W large enough to absorb the powers of p dividing the denominators k.
// Digits N through the result precision minus one are exact for the stored
// representative only; two operands equal modulo p^N may give results that
// differ from digit N on.
func Log(x *Number) (*Number, error) {
	if x.IsZero() || x.val != 0 {
		return nil, opError("log", ErrDomain, fmt.Sprintf("valuation of x is %d, want 0", x.val))
	}
	ctx := x.ctx
	u := new(big.Int).Sub(x.unit, bigOne)
	if new(big.Int).Mod(u, ctx.prime).Sign() != 0 {
		return nil, opError("log", ErrDomain, fmt.Sprintf("unit %s is not 1 modulo %s", x.unit, ctx.prime))
	}

	target := analyticPrecision(x)
	z := x.result()
	if u.Sign() == 0 {
		z.setZero(target)
		return z, nil
	}
	w := removeFactor(new(big.Int).Set(u), ctx.prime)

	// v(u^k/k) >= k*w - floor(log_p k), which never decreases in k; once it
	// reaches the target every later term vanishes.
	terms := int64(1)
	for terms*int64(w)-int64(ilog(ctx.prime, terms)) < int64(target) {
		terms++
	}
	work := max(ctx.extended, target+ilog(ctx.prime, terms-1))
	modW, modT := ctx.pow(work), ctx.pow(target)

	sum := new(big.Int)
	uk := big.NewInt(1)
	term := new(big.Int)
	for k := int64(1); k < terms; k++ {
		uk.Mul(uk, u).Mod(uk, modW)
		a := valuationOf(k, ctx.prime)
		kp := new(big.Int).Quo(big.NewInt(k), ctx.pow(a))
		inv := new(big.Int).ModInverse(kp, modT)
		if inv == nil {
			return nil, opError("log", ErrDivisionByZero, fmt.Sprintf("%d is a zero divisor modulo %s", k, ctx.prime))
		}
		term.Quo(uk, ctx.pow(a)).Mul(term, inv)
		if k%2 == 1 {
			sum.Add(sum, term)
		} else {
			sum.Sub(sum, term)
		}
		sum.Mod(sum, modT)
	}
	return z.setCanonical(sum, 0, target), nil
}

// Exp returns the p-adic exponential of x, defined when the valuation of x
// exceeds 1/(p-1): at least 1 for odd p and at least 2 for p = 2. It sums
// x^k/k! with the same precision policy as Log, so digits at or above the
// precision of x are exact only for its stored representative.
func Exp(x *Number) (*Number, error) {
	ctx := x.ctx
	target := analyticPrecision(x)
	z := x.result()
	if x.IsZero() {
		return z.setCanonical(big.NewInt(1), 0, target), nil
	}
	minVal := 1
	if ctx.prime.Cmp(bigTwo) == 0 {
		minVal = 2
	}
	if x.val < minVal {
		return nil, opError("exp", ErrDomain, fmt.Sprintf("valuation of x is %d, want at least %d", x.val, minVal))
	}

	// Legendre: v_p(k!) <= (k-1)/(p-1), so v(x^k/k!) >= k*w - (k-1)/(p-1),
	// which grows with k inside the domain.
	w := int64(x.val)
	pm1 := new(big.Int).Sub(ctx.prime, bigOne)
	bound := func(k int64) int64 {
		if k == 0 {
			return 0
		}
		q := new(big.Int).Quo(big.NewInt(k-1), pm1)
		return k*w - q.Int64()
	}
	terms := int64(0)
	for bound(terms) < int64(target) {
		terms++
	}
	guard := 0
	for k := int64(1); k < terms; k++ {
		guard += valuationOf(k, ctx.prime)
	}
	work := max(ctx.extended, target+guard)
	modW, modT := ctx.pow(work), ctx.pow(target)

	xr, _ := x.Int()
	sum := big.NewInt(1)
	xk := big.NewInt(1)
	// k! = p^a * pfree
	a := 0
	pfree := big.NewInt(1)
	term := new(big.Int)
	for k := int64(1); k < terms; k++ {
		xk.Mul(xk, xr).Mod(xk, modW)
		b := valuationOf(k, ctx.prime)
		a += b
		pfree.Mul(pfree, new(big.Int).Quo(big.NewInt(k), ctx.pow(b))).Mod(pfree, modW)
		inv := new(big.Int).ModInverse(pfree, modT)
		if inv == nil {
			return nil, opError("exp", ErrDivisionByZero, fmt.Sprintf("%d! is a zero divisor modulo %s", k, ctx.prime))
		}
		term.Quo(xk, ctx.pow(a)).Mul(term, inv)
		sum.Add(sum, term).Mod(sum, modT)
	}
	return z.setCanonical(sum, 0, target), nil
}

// analyticPrecision returns the precision of Log and Exp results for x. Only
// the first x.prec digits are independent of the choice of representative.
func analyticPrecision(x *Number) int {
	return min(2*x.prec, max(x.ctx.extended, x.prec))
}

// ilog returns floor(log_p k) for k >= 1.
func ilog(p *big.Int, k int64) int {
	if !p.IsInt64() {
		return 0
	}
	pp := p.Int64()
	n := 0
	for q := pp; q <= k; q *= pp {
		n++
		if q > k/pp {
			break
		}
	}
	return n
}
