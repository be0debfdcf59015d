package padic

import (
	"fmt"
	"math/big"
	"strings"
)

// Parse decodes s into a number of ctx at the context precision. It accepts
// the output of every PrintMode as well as signed integers and fractions:
//
//	127
//	-127
//	3/25
//	1 + 4*7^1 + 2*7^2
//	3*5^-2
//
// Every base written as b^e must be the context prime.
func Parse(ctx *Context, s string) (*Number, error) {
	return NewNumber(ctx).SetString(s)
}

// SetString sets x to the value of s (see Parse) and returns x.
func (x *Number) SetString(s string) (*Number, error) {
	r, err := parseExpansion(s, x.ctx.prime)
	if err != nil {
		return nil, err
	}
	return x.SetRat(r)
}

// maxParseExponent bounds |e| in b^e.
const maxParseExponent = 1 << 16

type expansionParser struct {
	src   string
	s     string
	pos   int
	prime *big.Int
}

func parseExpansion(src string, prime *big.Int) (*big.Rat, error) {
	p := &expansionParser{src: src, s: strings.Join(strings.Fields(src), ""), prime: prime}
	if p.s == "" {
		return nil, p.fail("empty input")
	}
	sum := new(big.Rat)
	for first := true; p.pos < len(p.s); first = false {
		neg := false
		switch c := p.s[p.pos]; {
		case c == '+' || c == '-':
			neg = c == '-'
			p.pos++
		case !first:
			return nil, p.fail("expected '+' or '-'")
		}
		term, err := p.term()
		if err != nil {
			return nil, err
		}
		if neg {
			term.Neg(term)
		}
		sum.Add(sum, term)
	}
	return sum, nil
}

// term parses coeff, coeff*b^e, coeff/d or b^e.
func (p *expansionParser) term() (*big.Rat, error) {
	coeff, err := p.integer()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.s) {
		return new(big.Rat).SetInt(coeff), nil
	}
	switch p.s[p.pos] {
	case '*':
		p.pos++
		base, err := p.integer()
		if err != nil {
			return nil, err
		}
		pw, err := p.power(base)
		if err != nil {
			return nil, err
		}
		return pw.Mul(pw, new(big.Rat).SetInt(coeff)), nil
	case '^':
		// A bare b^e with an implied coefficient of one.
		return p.power(coeff)
	case '/':
		p.pos++
		den, err := p.integer()
		if err != nil {
			return nil, err
		}
		if den.Sign() == 0 {
			return nil, &OpError{Op: "parse", Err: ErrDivisionByZero, Detail: fmt.Sprintf("%q", p.src)}
		}
		return new(big.Rat).SetFrac(coeff, den), nil
	}
	return new(big.Rat).SetInt(coeff), nil
}

// power parses an optional ^e following base and returns base^e.
func (p *expansionParser) power(base *big.Int) (*big.Rat, error) {
	if base.Cmp(p.prime) != 0 {
		return nil, &OpError{Op: "parse", Err: ErrContextMismatch,
			Detail: fmt.Sprintf("base %s in %q does not match p = %s", base, p.src, p.prime)}
	}
	e := int64(1)
	if p.pos < len(p.s) && p.s[p.pos] == '^' {
		p.pos++
		neg := false
		if p.pos < len(p.s) && p.s[p.pos] == '-' {
			neg = true
			p.pos++
		}
		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		if !n.IsInt64() || n.Int64() > maxParseExponent {
			return nil, p.fail("exponent out of range")
		}
		e = n.Int64()
		if neg {
			e = -e
		}
	}
	abs := e
	if abs < 0 {
		abs = -abs
	}
	pw := new(big.Int).Exp(base, big.NewInt(abs), nil)
	if e < 0 {
		return new(big.Rat).SetFrac(big.NewInt(1), pw), nil
	}
	return new(big.Rat).SetInt(pw), nil
}

func (p *expansionParser) integer() (*big.Int, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return nil, p.fail("expected digits")
	}
	n, ok := new(big.Int).SetString(p.s[start:p.pos], 10)
	if !ok {
		return nil, p.fail("invalid integer")
	}
	return n, nil
}

func (p *expansionParser) fail(msg string) error {
	return &OpError{Op: "parse", Err: ErrSyntax, Detail: fmt.Sprintf("%s at offset %d in %q", msg, p.pos, p.src)}
}
