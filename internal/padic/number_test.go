package padic

import (
	"errors"
	"math/big"
	"testing"
)

func TestFromInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		prime    int64
		prec     int
		value    int64
		wantUnit int64
		wantVal  int
	}{
		{"unit", 7, 10, 127, 127, 0},
		{"factor of p", 5, 10, 50, 2, 2},
		{"negative", 5, 4, -1, 624, 0},
		{"negative with factor", 3, 3, -9, 2, 2},
		{"zero", 7, 10, 0, 0, 10},
		{"vanishes at precision", 5, 3, 125, 0, 3},
		{"reduced", 2, 4, 1057, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := MustNewContext(tt.prime, WithPrecision(tt.prec))
			x := FromInt64(ctx, tt.value)
			if x.Unit().Int64() != tt.wantUnit || x.Valuation() != tt.wantVal {
				t.Errorf("FromInt64(%d) = %v*%d^%d, want %d*%d^%d",
					tt.value, x.Unit(), tt.prime, x.Valuation(), tt.wantUnit, tt.prime, tt.wantVal)
			}
			if x.Precision() != tt.prec {
				t.Errorf("Precision() = %d, want %d", x.Precision(), tt.prec)
			}
		})
	}
}

func TestIntegerConstructorsAgree(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(3, WithPrecision(12))
	a := FromInt64(ctx, 4096)
	b := FromUint64(ctx, 4096)
	c := FromBigInt(ctx, big.NewInt(4096))
	if !a.Equal(b) || !a.Equal(c) {
		t.Errorf("constructors disagree: %v, %v, %v", a, b, c)
	}
}

func TestNewNumberPrec(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(7, WithPrecision(10))

	x, err := NewNumberPrec(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !x.IsZero() || x.Valuation() != 3 {
		t.Errorf("NewNumberPrec(3) = %v with valuation %d, want zero with valuation 3", x, x.Valuation())
	}
	x.SetInt64(127)
	if x.Precision() != 3 || x.String() != "127" {
		t.Errorf("SetInt64(127) at precision 3 = %v (precision %d)", x, x.Precision())
	}
	x.SetInt64(400)
	if got := x.String(); got != "57" {
		t.Errorf("SetInt64(400) at precision 3 = %s, want 57", got)
	}

	if _, err := NewNumberPrec(ctx, -1); !errors.Is(err, ErrInvalidPrecision) {
		t.Errorf("NewNumberPrec(-1) error = %v, want ErrInvalidPrecision", err)
	}
}

func TestSetRat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prime     int64
		prec      int
		r         *big.Rat
		wantTerse string
		wantVal   int
	}{
		{"inverse of p", 7, 10, big.NewRat(1, 7), "1/7", -1},
		{"negative valuation", 5, 6, big.NewRat(3, 25), "3/25", -2},
		{"coprime denominator", 11, 8, big.NewRat(2, 3), "71452961", 0},
		{"integer", 3, 5, big.NewRat(18, 1), "18", 2},
		{"zero", 3, 5, new(big.Rat), "0", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := MustNewContext(tt.prime, WithPrecision(tt.prec))
			x, err := NewNumber(ctx).SetRat(tt.r)
			if err != nil {
				t.Fatalf("SetRat(%v) error: %v", tt.r, err)
			}
			if x.String() != tt.wantTerse || x.Valuation() != tt.wantVal {
				t.Errorf("SetRat(%v) = %s (valuation %d), want %s (valuation %d)",
					tt.r, x, x.Valuation(), tt.wantTerse, tt.wantVal)
			}
		})
	}
}

func TestSetRatCompositeModulus(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(6, WithPrecision(4))
	_, err := NewNumber(ctx).SetRat(big.NewRat(1, 2))
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("SetRat(1/2) with p = 6 error = %v, want ErrDivisionByZero", err)
	}
}

func TestAtPrecision(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(7, WithPrecision(10))
	x := FromInt64(ctx, 127)

	low, err := x.AtPrecision(2)
	if err != nil {
		t.Fatal(err)
	}
	if low.String() != "29" || low.Precision() != 2 {
		t.Errorf("AtPrecision(2) = %v (precision %d), want 29 (precision 2)", low, low.Precision())
	}

	high, err := low.AtPrecision(12)
	if err != nil {
		t.Fatal(err)
	}
	if high.String() != "29" || high.Precision() != 12 {
		t.Errorf("AtPrecision(12) = %v (precision %d), want 29 (precision 12)", high, high.Precision())
	}

	zero, err := FromInt64(ctx, 49).AtPrecision(1)
	if err != nil {
		t.Fatal(err)
	}
	if !zero.IsZero() || zero.Valuation() != 1 {
		t.Errorf("49 at precision 1 = %v (valuation %d), want zero", zero, zero.Valuation())
	}

	if _, err := x.AtPrecision(-1); !errors.Is(err, ErrInvalidPrecision) {
		t.Errorf("AtPrecision(-1) error = %v, want ErrInvalidPrecision", err)
	}
}

func TestNumberAccessors(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(5, WithPrecision(6))

	one := FromInt64(ctx, 1)
	if !one.IsOne() || one.IsZero() {
		t.Error("1 should be one and not zero")
	}
	if FromInt64(ctx, 6).IsOne() {
		t.Error("6 should not be one")
	}
	if one.Context() != ctx || one.Prime().Int64() != 5 {
		t.Error("accessors do not report the construction context")
	}

	frac := MustParse(ctx, "3/25")
	if _, ok := frac.Int(); ok {
		t.Error("Int() of 3/25 should report false")
	}
	if got := frac.Rat(); got.Cmp(big.NewRat(3, 25)) != 0 {
		t.Errorf("Rat() = %v, want 3/25", got)
	}
	if n, ok := FromInt64(ctx, 50).Int(); !ok || n.Int64() != 50 {
		t.Errorf("Int() of 50 = %v, %v", n, ok)
	}
}

func TestEqualComparesPrecision(t *testing.T) {
	t.Parallel()
	a := FromInt64(MustNewContext(7, WithPrecision(10)), 127)
	b := FromInt64(MustNewContext(7, WithPrecision(5)), 127)
	c := FromInt64(MustNewContext(5, WithPrecision(10)), 127)
	if a.Equal(b) {
		t.Error("numbers at different precisions compared equal")
	}
	if a.Equal(c) {
		t.Error("numbers with different primes compared equal")
	}
	if !a.Equal(a.Clone()) {
		t.Error("Clone() is not equal to the original")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(3, WithPrecision(8))
	x := FromInt64(ctx, 10)
	y := x.Clone()
	x.SetInt64(11)
	if y.String() != "10" {
		t.Errorf("clone changed to %v after modifying the original", y)
	}
	z := NewNumber(ctx).Set(y)
	y.SetInt64(12)
	if z.String() != "10" {
		t.Errorf("Set copy changed to %v", z)
	}
}

func TestSetCopiesFixedPrecision(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(5, WithPrecision(10))

	fixed, err := NewNumberPrec(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	x := NewNumber(ctx).Set(fixed)
	x.SetInt64(5)
	if x.Precision() != 4 {
		t.Errorf("copy of a fixed-precision number has precision %d after SetInt64, want 4", x.Precision())
	}

	fixed.Set(FromInt64(ctx, 3))
	fixed.SetInt64(5)
	if fixed.Precision() != 10 {
		t.Errorf("Set from a context-precision number left precision %d after SetInt64, want 10", fixed.Precision())
	}
}
