package padic

import "fmt"

// MustAdd is like [Number.Add] but panics on error.
func (x *Number) MustAdd(y *Number) *Number {
	z, err := x.Add(y)
	if err != nil {
		panic(fmt.Sprintf("MustAdd(%v) failed: %v", x, err))
	}
	return z
}

// MustSub is like [Number.Sub] but panics on error.
func (x *Number) MustSub(y *Number) *Number {
	z, err := x.Sub(y)
	if err != nil {
		panic(fmt.Sprintf("MustSub(%v) failed: %v", x, err))
	}
	return z
}

// MustMul is like [Number.Mul] but panics on error.
func (x *Number) MustMul(y *Number) *Number {
	z, err := x.Mul(y)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", x, err))
	}
	return z
}

// MustDiv is like [Number.Div] but panics on error.
func (x *Number) MustDiv(y *Number) *Number {
	z, err := x.Div(y)
	if err != nil {
		panic(fmt.Sprintf("MustDiv(%v) failed: %v", x, err))
	}
	return z
}

// MustParse is like [Parse] but panics on error.
func MustParse(ctx *Context, s string) *Number {
	x, err := Parse(ctx, s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}
