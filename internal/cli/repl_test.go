package cli

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/agbru/padicalc/internal/padic"
)

func runREPL(t *testing.T, config REPLConfig, input string) string {
	t.Helper()
	r, err := NewREPL(config)
	if err != nil {
		t.Fatalf("NewREPL: %v", err)
	}
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start()
	return out.String()
}

func TestREPLSession(t *testing.T) {
	t.Parallel()
	input := strings.Join([]string{
		"x = 127",
		"x + 1",
		"let z = x ^ 2",
		"vars",
		"log(2)",
		"prime 5",
		"vars",
		"y = 3/25",
		"mode val-unit",
		"y",
		"1 + 4*5^1 + 2*5^2",
		"foo",
		"log = 3",
		"status",
		"exit",
		"x = 1",
	}, "\n")
	output := runREPL(t, REPLConfig{Prime: big.NewInt(7), Precision: 20}, input)

	for _, want := range []string{
		"padicalc - interactive p-adic calculator",
		"p = 7 (0b111), is prime: true",
		"  x terse  = 127\n",
		"  x series = 1 + 4*7^1 + 2*7^2\n",
		"  ans terse  = 128\n",
		"  z terse  = 16129\n",
		"  x        = 127 (precision 20)",
		"  z        = 16129 (precision 20)",
		"Error: padic: log: argument outside domain: unit 2 is not 1 modulo 7",
		"p = 5 (0b101), is prime: true",
		"No variables.",
		"  y terse  = 3/25\n",
		"Print modes: val-unit",
		"  ans val-unit = 3*5^-2\n",
		"  ans val-unit = 71\n",
		`Error: unknown variable "foo"`,
		`Error: invalid variable name "log"`,
		"Extended precision: 20",
		"Print modes:        val-unit",
		"Variables:          2",
		"Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output is missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "  x val-unit = 1") {
		t.Error("commands after exit were executed")
	}
}

func TestREPLPrecision(t *testing.T) {
	t.Parallel()
	input := "prec 5\next 3\next 8\n1/3\nsqrt(2)\ndigits 10\nprime 1\nprec x\n"
	output := runREPL(t, REPLConfig{Prime: big.NewInt(7), Precision: 4, Modes: []padic.PrintMode{padic.Terse}}, input)

	for _, want := range []string{
		"Precision 5, extended precision 5",
		"Error: padic: context: invalid precision: extended precision 3 is below precision 5",
		"Precision 5, extended precision 8",
		"  ans terse = 11205\n",
		"  ans terse = 12240\n",
		"Exponent",
		"Error: padic: context: invalid prime: p = 1 must be greater than 1",
		`Error: invalid value "x"`,
		"Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output is missing %q:\n%s", want, output)
		}
	}
}

func TestREPLDefaults(t *testing.T) {
	t.Parallel()
	r, err := NewREPL(REPLConfig{Precision: 3})
	if err != nil {
		t.Fatalf("NewREPL: %v", err)
	}
	if r.config.Prime.Int64() != 7 || r.config.Extended != 3 || len(r.config.Modes) != 2 {
		t.Errorf("unexpected defaults %+v", r.config)
	}
	if _, err := NewREPL(REPLConfig{Prime: big.NewInt(0)}); err == nil {
		t.Error("NewREPL accepted p = 0")
	}
}

func TestREPLEval(t *testing.T) {
	t.Parallel()
	r, err := NewREPL(REPLConfig{Prime: big.NewInt(5), Precision: 6})
	if err != nil {
		t.Fatalf("NewREPL: %v", err)
	}
	r.SetOutput(&bytes.Buffer{})
	r.processCommand("a = 7")

	tests := []struct {
		expr    string
		want    string
		wantErr bool
	}{
		{"a", "7", false},
		{"a - 10", "15622", false},
		{"a * a", "49", false},
		{"1 / a", "13393", false},
		{"a ^ 0", "1", false},
		{"neg(a)", "15618", false},
		{"inv(5)", "1/5", false},
		{"teich(2)", "14557", false},
		{"exp(1)", "", true},
		{"cos(a)", "", true},
		{"a ^ b", "", true},
		{"1 / 0", "", true},
	}
	for _, tt := range tests {
		x, err := r.eval(tt.expr)
		if (err != nil) != tt.wantErr {
			t.Errorf("eval(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			continue
		}
		if err == nil && x.Text(padic.Terse) != tt.want {
			t.Errorf("eval(%q) = %s, want %s", tt.expr, x.Text(padic.Terse), tt.want)
		}
	}
}
