package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/padicalc/internal/config"
	"github.com/agbru/padicalc/internal/primality"
	"github.com/agbru/padicalc/internal/sysmon"
	"github.com/agbru/padicalc/internal/ui"
)

// sampleSystem is replaced in tests.
var sampleSystem = sysmon.Sample

// PrintExecutionConfig displays the parameters of a run: operation,
// precisions, timeout and the fields to evaluate.
func PrintExecutionConfig(cfg config.AppConfig, fields int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	op := cfg.Op
	if op == "none" {
		op = "set"
	}
	fmt.Fprintf(out, "Operation %s%s%s on x = %s%s%s", ui.ColorMagenta(), op, ui.ColorReset(), ui.ColorCyan(), cfg.X, ui.ColorReset())
	if cfg.Y != "" {
		fmt.Fprintf(out, ", y = %s%s%s", ui.ColorCyan(), cfg.Y, ui.ColorReset())
	}
	fmt.Fprintf(out, ".\n")
	fmt.Fprintf(out, "Precision %s%d%s, extended precision %s%d%s, timeout %s%s%s.\n",
		ui.ColorCyan(), cfg.Precision, ui.ColorReset(),
		ui.ColorCyan(), cfg.ExtendedPrecision(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s, primality backend %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), runtime.Version(), primality.Backend)
	if cfg.Verbose {
		fmt.Fprintf(out, "System load: %s.\n", sampleSystem())
	}
	if fields > 1 {
		fmt.Fprintf(out, "Execution mode: %s%d%s fields evaluated in parallel.\n", ui.ColorGreen(), fields, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Execution mode: single field.\n")
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
