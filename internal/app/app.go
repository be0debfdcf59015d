package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"

	"github.com/agbru/padicalc/internal/cli"
	"github.com/agbru/padicalc/internal/config"
	apperrors "github.com/agbru/padicalc/internal/errors"
	"github.com/agbru/padicalc/internal/logging"
	"github.com/agbru/padicalc/internal/primality"
	"github.com/agbru/padicalc/internal/ui"
)

// Application represents the padicalc application instance.
type Application struct {
	Config    config.AppConfig
	Tester    primality.Tester
	ErrWriter io.Writer
	// In feeds the REPL; nil means standard input.
	In     io.Reader
	logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithTester sets the primality tester used for field headers and
// --primes-upto.
func WithTester(t primality.Tester) AppOption {
	return func(a *Application) { a.Tester = t }
}

// WithInput sets the reader the REPL consumes.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Tester == nil {
		app.Tester = primality.Default()
	}

	programName := "padicalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	a.logger = logging.NewLeveledLogger(a.ErrWriter, "padicalc", level)

	if a.Config.REPL {
		return a.runREPL(out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive shell on the configured field.
func (a *Application) runREPL(out io.Writer) int {
	modes, err := a.Config.PrintModes()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	var prime *big.Int
	if a.Config.Prime != "" {
		p, ok := new(big.Int).SetString(a.Config.Prime, 10)
		if !ok {
			fmt.Fprintf(a.ErrWriter, "Error: invalid prime %q\n", a.Config.Prime)
			return apperrors.ExitErrorConfig
		}
		prime = p
	}

	repl, err := cli.NewREPL(cli.REPLConfig{
		Prime:     prime,
		Precision: a.Config.Precision,
		Extended:  a.Config.ExtendedPrecision(),
		Modes:     modes,
		Tester:    a.Tester,
	})
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	a.logger.Debug("repl started", logging.String("prime", a.Config.Prime), logging.Int("precision", a.Config.Precision))
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
