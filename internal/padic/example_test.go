package padic_test

import (
	"errors"
	"fmt"

	"github.com/agbru/padicalc/internal/padic"
)

// ExampleNumber_Text shows the three renderings of the same 7-adic number.
func ExampleNumber_Text() {
	ctx := padic.MustNewContext(7, padic.WithPrecision(10))
	x := padic.FromInt64(ctx, 127)

	fmt.Println(x.Text(padic.Terse))
	fmt.Println(x.Text(padic.Series))
	fmt.Println(padic.FromInt64(ctx, 98).Text(padic.ValUnit))
	// Output:
	// 127
	// 1 + 4*7^1 + 2*7^2
	// 2*7^2
}

// ExampleParse decodes a digit expansion and a fraction.
func ExampleParse() {
	ctx := padic.MustNewContext(5, padic.WithPrecision(6))

	x, err := padic.Parse(ctx, "3*5^-2 + 1")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(x, x.Valuation())

	_, err = padic.Parse(ctx, "1 + 2*3^1")
	fmt.Println(errors.Is(err, padic.ErrContextMismatch))
	// Output:
	// 28/25 -2
	// true
}

// ExampleLog evaluates a logarithm with extra working precision.
func ExampleLog() {
	ctx := padic.MustNewContext(5, padic.WithPrecision(10), padic.WithExtendedPrecision(25))
	y, err := padic.Log(padic.FromInt64(ctx, 7380996))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(y, y.Precision())

	_, err = padic.Log(padic.FromInt64(ctx, 2))
	fmt.Println(err)
	// Output:
	// 53478920457295 20
	// padic: log: argument outside domain: unit 2 is not 1 modulo 5
}

// ExampleNumber_Div divides by a multiple of p.
func ExampleNumber_Div() {
	ctx := padic.MustNewContext(3, padic.WithPrecision(8))
	z := padic.FromInt64(ctx, 2).MustDiv(padic.FromInt64(ctx, 9))
	fmt.Println(z.Text(padic.Series), z.Precision())
	// Output:
	// 2*3^-2 4
}
