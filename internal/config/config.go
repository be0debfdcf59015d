// Package config defines the command-line configuration of padicalc: the
// AppConfig structure, flag parsing, environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/padicalc/internal/errors"
	"github.com/agbru/padicalc/internal/logging"
	"github.com/agbru/padicalc/internal/padic"
)

// EnvPrefix is the prefix of every environment variable read by padicalc.
const EnvPrefix = "PADIC_"

// Operations lists the values accepted by --op.
var Operations = []string{
	"none", "add", "sub", "mul", "div", "neg", "inv", "pow",
	"log", "exp", "sqrt", "teichmuller",
}

// BinaryOperations need a second operand given with -y.
var BinaryOperations = []string{"add", "sub", "mul", "div", "pow"}

// CompletionShells lists the shells --completion can target.
var CompletionShells = []string{"bash", "zsh", "fish"}

// AppConfig aggregates the parsed configuration of one run.
type AppConfig struct {
	// Prime is the decimal prime p. It may exceed 64 bits.
	Prime string
	// X and Y are the operands in any syntax padic.Parse accepts. For pow, Y
	// is the integer exponent.
	X, Y string
	// Precision is the working precision N.
	Precision int
	// Extended is the extended precision E; zero means Precision.
	Extended int
	// Op is the operation applied to the operands.
	Op string
	// Mode is a comma separated list of print modes, or "all".
	Mode string
	// PrimesUpTo, when positive, evaluates the request for every prime up to
	// this bound instead of Prime.
	PrimesUpTo int
	// Digits adds a table of base-p digits to the output.
	Digits bool
	// Verify decodes the Series and Terse renderings of every result and
	// fails when they disagree.
	Verify bool
	// REPL starts the interactive shell.
	REPL bool
	// OutputFile receives the results in addition to stdout.
	OutputFile string
	// Quiet prints only the results, one per line.
	Quiet bool
	// Verbose prints the operands and timing information.
	Verbose bool
	// Timeout bounds a whole run.
	Timeout time.Duration
	// NoColor disables ANSI colors.
	NoColor bool
	// Completion, when set, prints a completion script for that shell.
	Completion string
	// MetricsFile receives the Prometheus metrics in textfile format.
	MetricsFile string
	// LogLevel is the zerolog level name for diagnostics on stderr.
	LogLevel string
}

// ParseConfig parses command-line arguments into an AppConfig, applies the
// PADIC_ environment overrides and validates the result. Flag errors and
// usage text go to errorOutput.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)
	fs.Usage = func() {
		fmt.Fprintf(errorOutput, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errorOutput, "Evaluates p-adic arithmetic and prints the results in terse, series or val-unit form.")
		fmt.Fprintln(errorOutput, "\nOptions:")
		fs.PrintDefaults()
		fmt.Fprintf(errorOutput, "\nEnvironment variables prefixed with %s override defaults, e.g. %sPRIME=7.\n", EnvPrefix, EnvPrefix)
	}

	cfg := AppConfig{}
	fs.StringVar(&cfg.Prime, "prime", "", "The prime p of the p-adic field.")
	fs.StringVar(&cfg.Prime, "p", "", "Shorthand for --prime.")
	fs.StringVar(&cfg.X, "x", "", "First operand (integer, fraction or digit expansion).")
	fs.StringVar(&cfg.Y, "y", "", "Second operand, or the exponent for --op pow.")
	fs.IntVar(&cfg.Precision, "prec", padic.DefaultPrecision, "Working precision N (number of p-adic digits).")
	fs.IntVar(&cfg.Extended, "ext", 0, "Extended precision E for log and exp (default: --prec).")
	fs.StringVar(&cfg.Op, "op", "none", fmt.Sprintf("Operation to apply (%s).", strings.Join(Operations, ", ")))
	fs.StringVar(&cfg.Mode, "mode", "terse,series", "Comma separated print modes (terse, series, val-unit) or 'all'.")
	fs.IntVar(&cfg.PrimesUpTo, "primes-upto", 0, "Evaluate for every prime up to this bound.")
	fs.BoolVar(&cfg.Digits, "digits", false, "Print a table of base-p digits for each result.")
	fs.BoolVar(&cfg.Verify, "verify", false, "Check that the series and terse renderings decode to the same number.")
	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive shell.")
	fs.BoolVar(&cfg.REPL, "i", false, "Shorthand for --repl.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write results to this file as well.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the results.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print operands and timings.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.DurationVar(&cfg.Timeout, "timeout", time.Minute, "Maximum duration of the run.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.Completion, "completion", "", fmt.Sprintf("Print a completion script (%s).", strings.Join(CompletionShells, ", ")))
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit.")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Diagnostic log level (debug, info, warn, error, disabled).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)
	cfg.Op = strings.ToLower(strings.TrimSpace(cfg.Op))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errorOutput, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if c.Completion != "" {
		if !slices.Contains(CompletionShells, c.Completion) {
			return apperrors.NewConfigError("unsupported shell %q for --completion (supported: %s)",
				c.Completion, strings.Join(CompletionShells, ", "))
		}
		return nil
	}
	if c.Precision < 0 {
		return apperrors.ValidationError{Field: "prec", Message: "must be non-negative"}
	}
	if c.Extended != 0 && c.Extended < c.Precision {
		return apperrors.ValidationError{Field: "ext", Message: fmt.Sprintf("must be at least --prec (%d)", c.Precision)}
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be strictly positive")
	}
	if !slices.Contains(Operations, c.Op) {
		return apperrors.NewConfigError("unknown operation %q (accepted: %s)", c.Op, strings.Join(Operations, ", "))
	}
	if _, err := c.PrintModes(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.PrimesUpTo < 0 {
		return apperrors.ValidationError{Field: "primes-upto", Message: "must be non-negative"}
	}
	if c.REPL {
		return nil
	}
	if c.PrimesUpTo == 0 {
		if c.Prime == "" {
			return apperrors.NewConfigError("a prime is required: use --prime, --primes-upto or --repl")
		}
		p, ok := new(big.Int).SetString(c.Prime, 10)
		if !ok || p.Cmp(big.NewInt(1)) <= 0 {
			return apperrors.ValidationError{Field: "prime", Message: fmt.Sprintf("%q is not an integer greater than 1", c.Prime)}
		}
	}
	if c.X == "" {
		return apperrors.NewConfigError("an operand is required: use -x")
	}
	if slices.Contains(BinaryOperations, c.Op) && c.Y == "" {
		return apperrors.NewConfigError("operation %q needs a second operand: use -y", c.Op)
	}
	return nil
}

// ExtendedPrecision returns E, defaulting to the working precision.
func (c AppConfig) ExtendedPrecision() int {
	if c.Extended == 0 {
		return c.Precision
	}
	return c.Extended
}

// PrintModes decodes Mode into print modes, in the order given and without
// duplicates.
func (c AppConfig) PrintModes() ([]padic.PrintMode, error) {
	if strings.EqualFold(strings.TrimSpace(c.Mode), "all") {
		return []padic.PrintMode{padic.Terse, padic.Series, padic.ValUnit}, nil
	}
	var modes []padic.PrintMode
	for _, name := range strings.Split(c.Mode, ",") {
		m, err := padic.ParsePrintMode(name)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(modes, m) {
			modes = append(modes, m)
		}
	}
	return modes, nil
}
