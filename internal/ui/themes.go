package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape codes, one per role.
type Theme struct {
	Name string
	// Primary highlights values such as primes and results.
	Primary string
	// Secondary is used for labels and operands.
	Secondary string
	Success   string
	Warning   string
	Error     string
	// Info colors digit expansions.
	Info      string
	Bold      string
	Underline string
	Reset     string

	// Table holds the lipgloss colors of rendered tables.
	Table TableColors
}

// TableColors are the lipgloss colors used by RenderTable.
type TableColors struct {
	Border lipgloss.TerminalColor
	Header lipgloss.TerminalColor
	Cell   lipgloss.TerminalColor
	Error  lipgloss.TerminalColor
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;45m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;114m",
		Warning:   "\033[38;5;221m",
		Error:     "\033[38;5;203m",
		Info:      "\033[38;5;177m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Table: TableColors{
			Border: lipgloss.Color("#5F87AF"),
			Header: lipgloss.Color("#00D7FF"),
			Cell:   lipgloss.Color("#E4E4E4"),
			Error:  lipgloss.Color("#FF5F5F"),
		},
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;25m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;90m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Table: TableColors{
			Border: lipgloss.Color("#8A8A8A"),
			Header: lipgloss.Color("#005FAF"),
			Cell:   lipgloss.Color("#1C1C1C"),
			Error:  lipgloss.Color("#AF0000"),
		},
	}

	// NoColorTheme disables colors, for --no-color and NO_COLOR.
	NoColorTheme = Theme{
		Name: "none",
		Table: TableColors{
			Border: lipgloss.NoColor{},
			Header: lipgloss.NoColor{},
			Cell:   lipgloss.NoColor{},
			Error:  lipgloss.NoColor{},
		},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme called name ("dark", "light" or "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects the startup theme. Colors are disabled by noColor or by
// a NO_COLOR environment variable (https://no-color.org/); PADIC_THEME may
// name another theme.
func InitTheme(noColor bool) {
	if _, exists := os.LookupEnv("NO_COLOR"); noColor || exists {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv("PADIC_THEME"))
}
