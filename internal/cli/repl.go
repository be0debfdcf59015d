package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/agbru/padicalc/internal/padic"
	"github.com/agbru/padicalc/internal/primality"
	"github.com/agbru/padicalc/internal/ui"
)

// REPLConfig holds the initial state of an interactive session.
type REPLConfig struct {
	// Prime is the starting prime; nil means 7.
	Prime *big.Int
	// Precision and Extended configure the starting context.
	Precision int
	Extended  int
	// Modes are the print modes used for results.
	Modes []padic.PrintMode
	// Tester answers the "is prime" part of the header; nil means the
	// default backend.
	Tester primality.Tester
}

// REPL is an interactive p-adic calculator. Variables live in the current
// field; changing the prime clears them.
type REPL struct {
	config REPLConfig
	ctx    *padic.Context
	vars   map[string]*padic.Number
	in     io.Reader
	out    io.Writer
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// unary lists the functions accepted as name(arg).
var unary = map[string]func(*padic.Number) (*padic.Number, error){
	"log":   padic.Log,
	"exp":   padic.Exp,
	"sqrt":  padic.Sqrt,
	"teich": padic.Teichmuller,
	"inv":   func(x *padic.Number) (*padic.Number, error) { return x.Inv() },
	"neg":   func(x *padic.Number) (*padic.Number, error) { return x.Neg(), nil },
}

var reserved = []string{"prime", "prec", "ext", "mode", "digits", "vars", "status", "help", "exit", "quit", "let"}

// NewREPL creates a session from config.
func NewREPL(config REPLConfig) (*REPL, error) {
	if config.Prime == nil {
		config.Prime = big.NewInt(7)
	}
	if config.Extended < config.Precision {
		config.Extended = config.Precision
	}
	if len(config.Modes) == 0 {
		config.Modes = []padic.PrintMode{padic.Terse, padic.Series}
	}
	if config.Tester == nil {
		config.Tester = primality.Default()
	}
	r := &REPL{
		config: config,
		vars:   make(map[string]*padic.Number),
		in:     os.Stdin,
		out:    os.Stdout,
	}
	if err := r.rebuildContext(); err != nil {
		return nil, err
	}
	return r, nil
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads commands until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprintf(r.out, "%sQ_%s> %s", ui.ColorGreen(), r.config.Prime, ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %spadicalc - interactive p-adic calculator%s   %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintln(r.out, FormatHeader(r.config.Prime, r.config.Tester.IsPrime(r.config.Prime)))
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, line := range [][2]string{
		{"<expr>", "Evaluate and print an expression (stored in ans)"},
		{"<name> = <expr>", "Assign a variable"},
		{"prime <p>", "Switch to the field Q_p (clears variables)"},
		{"prec <n>", "Set the working precision"},
		{"ext <n>", "Set the extended precision of log and exp"},
		{"mode <modes>", "Set print modes: terse, series, val-unit or all"},
		{"digits <expr>", "Print the base-p digits of an expression"},
		{"vars", "List variables"},
		{"status", "Display the current field"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	} {
		fmt.Fprintf(r.out, "  %s%-16s%s - %s\n", ui.ColorYellow(), line[0], ui.ColorReset(), line[1])
	}
	fmt.Fprintf(r.out, "Expressions: a literal (127, -3/25, 1 + 4*7^1), a variable, a op b with op in + - * / ^,\n")
	fmt.Fprintf(r.out, "or f(a) with f in log, exp, sqrt, teich, inv, neg.\n")
}

// processCommand executes one line. It returns false when the session
// should end.
func (r *REPL) processCommand(input string) bool {
	if name, expr, ok := strings.Cut(input, "="); ok {
		r.cmdAssign(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "let ")), strings.TrimSpace(expr))
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch cmd {
	case "prime", "p":
		r.cmdPrime(args)
	case "prec":
		r.cmdPrecision(args, false)
	case "ext":
		r.cmdPrecision(args, true)
	case "mode":
		r.cmdMode(rest)
	case "digits":
		r.cmdDigits(rest)
	case "vars":
		r.cmdVars()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.show("ans", input)
	}
	return true
}

func (r *REPL) errorf(format string, args ...any) {
	fmt.Fprintf(r.out, "%sError: %s%s\n", ui.ColorRed(), fmt.Sprintf(format, args...), ui.ColorReset())
}

func (r *REPL) rebuildContext() error {
	ctx, err := padic.NewContext(r.config.Prime,
		padic.WithPrecision(r.config.Precision), padic.WithExtendedPrecision(r.config.Extended))
	if err != nil {
		return err
	}
	r.ctx = ctx
	return nil
}

func (r *REPL) cmdPrime(args []string) {
	if len(args) != 1 {
		r.errorf("usage: prime <p>")
		return
	}
	p, ok := new(big.Int).SetString(args[0], 10)
	if !ok {
		r.errorf("invalid prime %q", args[0])
		return
	}
	old := r.config.Prime
	r.config.Prime = p
	if err := r.rebuildContext(); err != nil {
		r.config.Prime = old
		r.errorf("%v", err)
		return
	}
	clear(r.vars)
	fmt.Fprintln(r.out, FormatHeader(p, r.config.Tester.IsPrime(p)))
}

func (r *REPL) cmdPrecision(args []string, extended bool) {
	name := "prec"
	if extended {
		name = "ext"
	}
	if len(args) != 1 {
		r.errorf("usage: %s <n>", name)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		r.errorf("invalid value %q", args[0])
		return
	}
	saved := r.config
	if extended {
		r.config.Extended = n
	} else {
		r.config.Precision = n
		r.config.Extended = max(r.config.Extended, n)
	}
	if err := r.rebuildContext(); err != nil {
		r.config = saved
		r.errorf("%v", err)
		return
	}
	fmt.Fprintf(r.out, "Precision %s%d%s, extended precision %s%d%s\n",
		ui.ColorCyan(), r.config.Precision, ui.ColorReset(), ui.ColorCyan(), r.config.Extended, ui.ColorReset())
}

func (r *REPL) cmdMode(arg string) {
	if arg == "" {
		r.errorf("usage: mode <terse,series,val-unit|all>")
		return
	}
	var modes []padic.PrintMode
	if strings.EqualFold(arg, "all") {
		modes = []padic.PrintMode{padic.Terse, padic.Series, padic.ValUnit}
	} else {
		for _, name := range strings.Split(strings.ReplaceAll(arg, " ", ","), ",") {
			if name == "" {
				continue
			}
			m, err := padic.ParsePrintMode(name)
			if err != nil {
				r.errorf("%v", err)
				return
			}
			if !slices.Contains(modes, m) {
				modes = append(modes, m)
			}
		}
	}
	r.config.Modes = modes
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	fmt.Fprintf(r.out, "Print modes: %s%s%s\n", ui.ColorGreen(), strings.Join(names, ", "), ui.ColorReset())
}

func (r *REPL) cmdAssign(name, expr string) {
	if !identifier.MatchString(name) || slices.Contains(reserved, name) || unary[name] != nil {
		r.errorf("invalid variable name %q", name)
		return
	}
	if expr == "" {
		r.errorf("usage: <name> = <expr>")
		return
	}
	r.show(name, expr)
}

// show evaluates expr, stores it under name and prints it.
func (r *REPL) show(name, expr string) {
	x, err := r.eval(expr)
	if err != nil {
		r.errorf("%v", err)
		return
	}
	r.vars[name] = x
	displayNumber(r.out, name, x, r.config.Modes)
}

func (r *REPL) cmdDigits(expr string) {
	if expr == "" {
		r.errorf("usage: digits <expr>")
		return
	}
	x, err := r.eval(expr)
	if err != nil {
		r.errorf("%v", err)
		return
	}
	DisplayDigits(r.out, x)
}

func (r *REPL) cmdVars() {
	if len(r.vars) == 0 {
		fmt.Fprintln(r.out, "No variables.")
		return
	}
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		x := r.vars[name]
		fmt.Fprintf(r.out, "  %s%-8s%s = %s (precision %d)\n", ui.ColorYellow(), name, ui.ColorReset(), x.Text(padic.Terse), x.Precision())
	}
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent field:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s\n", FormatHeader(r.config.Prime, r.config.Tester.IsPrime(r.config.Prime)))
	fmt.Fprintf(r.out, "  Precision:          %s%d%s\n", ui.ColorCyan(), r.config.Precision, ui.ColorReset())
	fmt.Fprintf(r.out, "  Extended precision: %s%d%s\n", ui.ColorCyan(), r.config.Extended, ui.ColorReset())
	names := make([]string, len(r.config.Modes))
	for i, m := range r.config.Modes {
		names[i] = m.String()
	}
	fmt.Fprintf(r.out, "  Print modes:        %s%s%s\n", ui.ColorCyan(), strings.Join(names, ", "), ui.ColorReset())
	fmt.Fprintf(r.out, "  Variables:          %s%d%s\n", ui.ColorCyan(), len(r.vars), ui.ColorReset())
	fmt.Fprintln(r.out)
}

// eval evaluates a REPL expression: "a op b", "f(a)", a variable or a
// literal in padic.Parse syntax.
func (r *REPL) eval(expr string) (*padic.Number, error) {
	fields := strings.Fields(expr)
	if len(fields) == 3 && len(fields[1]) == 1 && strings.Contains("+-*/^", fields[1]) {
		return r.evalBinary(fields[0], fields[1][0], fields[2])
	}
	if len(fields) == 1 {
		if name, arg, ok := strings.Cut(fields[0], "("); ok && strings.HasSuffix(arg, ")") {
			fn, known := unary[strings.ToLower(name)]
			if !known {
				return nil, fmt.Errorf("unknown function %q", name)
			}
			x, err := r.operand(strings.TrimSuffix(arg, ")"))
			if err != nil {
				return nil, err
			}
			return fn(x)
		}
	}
	return r.operand(expr)
}

func (r *REPL) evalBinary(a string, op byte, b string) (*padic.Number, error) {
	x, err := r.operand(a)
	if err != nil {
		return nil, err
	}
	if op == '^' {
		e, err := strconv.ParseInt(b, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("exponent %q is not an integer", b)
		}
		return x.Pow(e)
	}
	y, err := r.operand(b)
	if err != nil {
		return nil, err
	}
	switch op {
	case '+':
		return x.Add(y)
	case '-':
		return x.Sub(y)
	case '*':
		return x.Mul(y)
	default:
		return x.Div(y)
	}
}

// operand resolves a variable name or decodes a literal.
func (r *REPL) operand(s string) (*padic.Number, error) {
	s = strings.TrimSpace(s)
	if identifier.MatchString(s) {
		x, ok := r.vars[s]
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", s)
		}
		return x, nil
	}
	return padic.Parse(r.ctx, s)
}
