package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/padicalc/internal/config"
)

// FlagCompletion describes a flag for shell completion. Every generator
// reads flagRegistry, so a new flag only needs a new entry there.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // suggested values; nil for booleans and free values
	ValueName string   // value label for zsh; empty for booleans
	IsFile    bool     // completes file paths
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "prime", Short: "p", Help: "Prime p of the p-adic field", Values: []string{"2", "3", "5", "7", "11", "13"}, ValueName: "prime"},
	{Short: "x", Help: "First operand", ValueName: "number"},
	{Short: "y", Help: "Second operand or exponent", ValueName: "number"},
	{Long: "op", Help: "Operation to apply", Values: config.Operations, ValueName: "operation"},
	{Long: "prec", Help: "Working precision", Values: []string{"10", "20", "50", "100"}, ValueName: "digits"},
	{Long: "ext", Help: "Extended precision for log and exp", Values: []string{"20", "25", "50"}, ValueName: "digits"},
	{Long: "mode", Help: "Print modes", Values: []string{"terse", "series", "val-unit", "terse,series", "all"}, ValueName: "modes"},
	{Long: "primes-upto", Help: "Evaluate for every prime up to this bound", Values: []string{"10", "100", "1000"}, ValueName: "bound"},
	{Long: "digits", Help: "Print a table of base-p digits"},
	{Long: "verify", Help: "Cross-check series and terse renderings"},
	{Long: "repl", Short: "i", Help: "Start the interactive shell"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Show operands and timings"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Diagnostic log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "completion", Help: "Generate completion script", Values: config.CompletionShells, ValueName: "shell"},
}

// GenerateCompletion writes a completion script for shell ("bash", "zsh"
// or "fish") to out.
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(config.CompletionShells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// flagNames returns the spellings of f as typed on the command line.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion() string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(flagNames(f), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for padicalc
# Add this to your ~/.bashrc or ~/.bash_completion

_padicalc_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _padicalc_completions padicalc
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion() string {
	args := make([]string, len(flagRegistry))
	for i, f := range flagRegistry {
		args[i] = zshArgEntry(f)
	}
	return fmt.Sprintf(`#compdef padicalc

# Zsh completion script for padicalc
# Add this to your ~/.zshrc or place in $fpath

_padicalc() {
    _arguments -s \
%s
}

_padicalc "$@"
`, strings.Join(args, " \\\n"))
}

// zshArgEntry formats f as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

func fishCompletion() string {
	lines := []string{
		"# Fish completion script for padicalc",
		"# Add this to ~/.config/fish/completions/padicalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c padicalc -f",
		"",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	return strings.Join(lines, "\n") + "\n"
}

// fishCompleteLine formats f as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c padicalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
