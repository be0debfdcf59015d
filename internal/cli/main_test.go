package cli

import (
	"os"
	"testing"

	"github.com/agbru/padicalc/internal/ui"
)

// Output assertions compare plain text, so every test runs without colors.
func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	os.Exit(m.Run())
}
