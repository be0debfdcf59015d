package padic

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// PrintMode selects the textual rendering of a Number.
type PrintMode int

const (
	// Terse prints the reduced integer unit * p^valuation, or the fraction
	// unit/p^-valuation for a negative valuation.
	Terse PrintMode = iota
	// Series prints the base-p digit expansion d0 + d1*p^1 + ...
	Series
	// ValUnit prints unit*p^valuation.
	ValUnit
)

var printModeNames = []string{"terse", "series", "val-unit"}

func (m PrintMode) String() string {
	if m >= 0 && int(m) < len(printModeNames) {
		return printModeNames[m]
	}
	return "PrintMode(" + strconv.Itoa(int(m)) + ")"
}

// ParsePrintMode maps a mode name ("terse", "series", "val-unit") to its
// PrintMode. Matching is case-insensitive and accepts "val_unit".
func ParsePrintMode(name string) (PrintMode, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, s := range printModeNames {
		if n == s {
			return PrintMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown print mode %q (accepted values: %s)", name, strings.Join(printModeNames, ", "))
}

// Digit is one term d*p^e of a digit expansion, 0 <= d < p.
type Digit struct {
	Value    *big.Int
	Exponent int
}

// Digits returns the base-p digits of x for the exponents
// Valuation()..Precision()-1 in increasing order, zero digits included. The
// zero element has no digits.
func (x *Number) Digits() []Digit {
	if x.IsZero() {
		return nil
	}
	n := x.relPrec()
	digits := make([]Digit, 0, n)
	u := new(big.Int).Set(x.unit)
	for i := 0; i < n; i++ {
		d := new(big.Int)
		u.QuoRem(u, x.ctx.prime, d)
		digits = append(digits, Digit{Value: d, Exponent: x.val + i})
	}
	return digits
}

// Text renders x in the given mode.
func (x *Number) Text(mode PrintMode) string {
	if x.IsZero() {
		return "0"
	}
	switch mode {
	case Series:
		return x.seriesText()
	case ValUnit:
		if x.val == 0 {
			return x.unit.String()
		}
		return fmt.Sprintf("%s*%s^%d", x.unit, x.ctx.prime, x.val)
	default:
		if x.val >= 0 {
			n, _ := x.Int()
			return n.String()
		}
		return x.unit.String() + "/" + x.ctx.pow(-x.val).String()
	}
}

// String renders x in Terse mode.
func (x *Number) String() string { return x.Text(Terse) }

func (x *Number) seriesText() string {
	var b strings.Builder
	p := x.ctx.prime.String()
	for _, d := range x.Digits() {
		if d.Value.Sign() == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(d.Value.String())
		if d.Exponent != 0 {
			b.WriteString("*")
			b.WriteString(p)
			b.WriteString("^")
			b.WriteString(strconv.Itoa(d.Exponent))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
