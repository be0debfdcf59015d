package padic

import (
	"errors"
	"math/big"
	"testing"
)

func TestNewContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prime   *big.Int
		opts    []ContextOption
		wantErr error
		wantN   int
		wantE   int
	}{
		{"defaults", big.NewInt(7), nil, nil, DefaultPrecision, DefaultPrecision},
		{"explicit precision", big.NewInt(5), []ContextOption{WithPrecision(10)}, nil, 10, 10},
		{"extended precision", big.NewInt(5), []ContextOption{WithPrecision(10), WithExtendedPrecision(25)}, nil, 10, 25},
		{"zero precision", big.NewInt(3), []ContextOption{WithPrecision(0)}, nil, 0, 0},
		{"prime one", big.NewInt(1), nil, ErrInvalidPrime, 0, 0},
		{"negative prime", big.NewInt(-7), nil, ErrInvalidPrime, 0, 0},
		{"nil prime", nil, nil, ErrInvalidPrime, 0, 0},
		{"negative precision", big.NewInt(7), []ContextOption{WithPrecision(-1)}, ErrInvalidPrecision, 0, 0},
		{"extended below precision", big.NewInt(7), []ContextOption{WithPrecision(10), WithExtendedPrecision(5)}, ErrInvalidPrecision, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, err := NewContext(tt.prime, tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewContext() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewContext() unexpected error: %v", err)
			}
			if ctx.Precision() != tt.wantN || ctx.ExtendedPrecision() != tt.wantE {
				t.Errorf("precision = (%d, %d), want (%d, %d)",
					ctx.Precision(), ctx.ExtendedPrecision(), tt.wantN, tt.wantE)
			}
			if ctx.Prime().Cmp(tt.prime) != 0 {
				t.Errorf("Prime() = %v, want %v", ctx.Prime(), tt.prime)
			}
		})
	}
}

func TestContextPow(t *testing.T) {
	t.Parallel()
	ctx := MustNewContext(2, WithPrecision(4))

	if got := ctx.Pow(3); got.Int64() != 8 {
		t.Errorf("Pow(3) = %v, want 8", got)
	}
	// Past the cached range.
	if got := ctx.Pow(40); got.Cmp(new(big.Int).Lsh(big.NewInt(1), 40)) != 0 {
		t.Errorf("Pow(40) = %v, want 2^40", got)
	}
	// The returned value is a copy.
	ctx.Pow(2).SetInt64(99)
	if got := ctx.Pow(2); got.Int64() != 4 {
		t.Errorf("Pow(2) after mutation = %v, want 4", got)
	}
}

func TestContextPrimeIsCopied(t *testing.T) {
	t.Parallel()
	p := big.NewInt(11)
	ctx, err := NewContext(p)
	if err != nil {
		t.Fatal(err)
	}
	p.SetInt64(13)
	ctx.Prime().SetInt64(17)
	if ctx.Prime().Int64() != 11 {
		t.Errorf("Prime() = %v, want 11", ctx.Prime())
	}
}

func TestContextSamePrimeAndString(t *testing.T) {
	t.Parallel()
	a := MustNewContext(7)
	b := MustNewContext(7, WithPrecision(5))
	c := MustNewContext(5)

	if !a.SamePrime(b) {
		t.Error("contexts with p = 7 should share a prime")
	}
	if a.SamePrime(c) {
		t.Error("p = 7 and p = 5 should not share a prime")
	}
	if got, want := b.String(), "Q_7 (precision 5, extended 5)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMustNewContextPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustNewContext(0) did not panic")
		}
	}()
	MustNewContext(0)
}

func TestOpErrorMessage(t *testing.T) {
	t.Parallel()
	_, err := NewContextInt64(1)
	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("error %T is not *OpError", err)
	}
	if opErr.Op != "context" {
		t.Errorf("Op = %q, want %q", opErr.Op, "context")
	}
	if got, want := err.Error(), "padic: context: invalid prime: p = 1 must be greater than 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
