// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplaySummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatHeader], [FormatQuietResult], [FormatLabel].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultsToFile].

package cli

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/padicalc/internal/errors"
	"github.com/agbru/padicalc/internal/format"
	"github.com/agbru/padicalc/internal/orchestration"
	"github.com/agbru/padicalc/internal/padic"
	"github.com/agbru/padicalc/internal/ui"
)

// FormatHeader returns the line introducing a field, e.g.
// "p = 7 (0b111), is prime: true".
func FormatHeader(prime *big.Int, isPrime bool) string {
	bin, err := format.FormatBase(prime, 2)
	if err != nil {
		bin = prime.Text(2)
	}
	return fmt.Sprintf("p = %s (%s), is prime: %t", prime, format.Truncate(bin, TruncationLimit, DisplayEdges), isPrime)
}

// FormatLabel names the result of op applied to x and y, e.g. "log(x)".
// exponent is used by pow.
func FormatLabel(op string, exponent int64) string {
	switch op {
	case "add":
		return "x + y"
	case "sub":
		return "x - y"
	case "mul":
		return "x * y"
	case "div":
		return "x / y"
	case "neg":
		return "-x"
	case "inv":
		return "1/x"
	case "pow":
		return "x^" + strconv.FormatInt(exponent, 10)
	case "log", "exp", "sqrt":
		return op + "(x)"
	case "teichmuller":
		return "teich(x)"
	}
	return "x"
}

// FormatQuietResult returns the renderings of a result, one per line, for
// scripting. Failed results give their error message.
func FormatQuietResult(res orchestration.Result, modes []padic.PrintMode) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	lines := make([]string, len(modes))
	for i, m := range modes {
		lines[i] = res.Value.Text(m)
	}
	return strings.Join(lines, "\n")
}

// DisplayQuietResult writes FormatQuietResult to out.
func DisplayQuietResult(out io.Writer, res orchestration.Result, modes []padic.PrintMode) {
	fmt.Fprintln(out, FormatQuietResult(res, modes))
}

// DisplayResult writes the header of a field followed by the result in
// every print mode. Verbose output also shows the operands, the precision
// bookkeeping and the duration.
func DisplayResult(out io.Writer, res orchestration.Result, opts orchestration.PresentationOptions) {
	if opts.Quiet {
		DisplayQuietResult(out, res, opts.Modes)
		return
	}
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorBold(), FormatHeader(res.Prime, res.IsPrime), ui.ColorReset())
	if !res.IsPrime {
		fmt.Fprintf(out, "  %swarning: %s is not prime, the ring has zero divisors%s\n", ui.ColorYellow(), res.Prime, ui.ColorReset())
	}
	if opts.Verbose && opts.Op != "none" {
		if res.X != nil {
			displayNumber(out, "x", res.X, opts.Modes)
		}
		if res.Y != nil {
			displayNumber(out, "y", res.Y, opts.Modes)
		}
	}

	label := FormatLabel(opts.Op, opts.Exponent)
	if res.Err != nil {
		fmt.Fprintf(out, "  %s%s: %s%s\n", ui.ColorRed(), label, causeOf(res.Err), ui.ColorReset())
		return
	}
	displayNumber(out, label, res.Value, opts.Modes)
	if opts.Verbose {
		fmt.Fprintf(out, "  %sprecision %d, valuation %d, computed in %s%s\n", ui.ColorBlue(),
			res.Value.Precision(), res.Value.Valuation(), format.FormatExecutionDuration(res.Duration), ui.ColorReset())
	}
	if opts.Digits {
		DisplayDigits(out, res.Value)
	}
}

func displayNumber(out io.Writer, label string, x *padic.Number, modes []padic.PrintMode) {
	width := 0
	for _, m := range modes {
		width = max(width, len(m.String()))
	}
	for _, m := range modes {
		fmt.Fprintf(out, "  %s %-*s = %s%s%s\n", label, width, m, ui.ColorCyan(), x.Text(m), ui.ColorReset())
	}
}

// causeOf strips the prime prefix a CalculationError adds, since the header
// already names the field.
func causeOf(err error) error {
	var calcErr apperrors.CalculationError
	if errors.As(err, &calcErr) {
		return calcErr.Cause
	}
	return err
}

// DisplayDigits writes the base-p digits of x as a table.
func DisplayDigits(out io.Writer, x *padic.Number) {
	digits := x.Digits()
	if len(digits) == 0 {
		fmt.Fprintf(out, "  (zero to precision %d)\n", x.Precision())
		return
	}
	rows := make([][]string, len(digits))
	for i, d := range digits {
		rows[i] = []string{strconv.Itoa(d.Exponent), d.Value.String()}
	}
	fmt.Fprintln(out, ui.RenderTable([]string{"Exponent", "Digit"}, rows, nil))
}

// DisplaySummary writes one table row per evaluated field.
func DisplaySummary(out io.Writer, results []orchestration.Result) {
	rows := make([][]string, len(results))
	failed := make(map[int]bool)
	for i, res := range results {
		row := []string{res.Prime.String(), "", "", "", format.FormatExecutionDuration(res.Duration)}
		if res.Err != nil {
			row[1] = "error"
			row[3] = format.Truncate(causeOf(res.Err).Error(), TruncationLimit, DisplayEdges)
			failed[i] = true
		} else {
			row[1] = "ok"
			row[2] = strconv.Itoa(res.Value.Precision())
			row[3] = format.Truncate(res.Value.Text(padic.Terse), TruncationLimit, DisplayEdges)
		}
		rows[i] = row
	}
	fmt.Fprintf(out, "\n--- Summary ---\n")
	fmt.Fprintln(out, ui.RenderTable([]string{"Prime", "Status", "Precision", "Result", "Duration"}, rows, failed))
}

// WriteResultsToFile writes the results of a run to path, creating parent
// directories as needed. Each field gets its header followed by one line per
// print mode.
func WriteResultsToFile(path string, results []orchestration.Result, opts orchestration.PresentationOptions) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	label := FormatLabel(opts.Op, opts.Exponent)
	fmt.Fprintf(file, "# padicalc results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s\n", label)
	fmt.Fprintf(file, "# Fields: %d\n", len(results))
	fmt.Fprintf(file, "\n")

	for _, res := range results {
		fmt.Fprintln(file, FormatHeader(res.Prime, res.IsPrime))
		if res.Err != nil {
			fmt.Fprintf(file, "  %s: %v\n", label, causeOf(res.Err))
			continue
		}
		for _, m := range opts.Modes {
			fmt.Fprintf(file, "  %s %s = %s\n", label, m, res.Value.Text(m))
		}
	}
	return file.Close()
}
