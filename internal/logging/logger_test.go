package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// decode parses the single JSON entry in buf.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid JSON entry %q: %v", buf.String(), err)
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"   ", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, error %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
	if _, err := ParseLevel("loud"); err == nil || !strings.Contains(err.Error(), `"loud"`) {
		t.Errorf("error should name the level, got %v", err)
	}
}

func TestNewLeveledLogger(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level zerolog.Level
		debug bool
		info  bool
		error bool
	}{
		{zerolog.DebugLevel, true, true, true},
		{zerolog.InfoLevel, false, true, true},
		{zerolog.WarnLevel, false, false, true},
		{zerolog.Disabled, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := NewLeveledLogger(&buf, "padicalc", tt.level)
			logger.Debug("evaluation started")
			logger.Info("metrics written")
			logger.Error("evaluation failed", errors.New("outside domain"))

			out := buf.String()
			for msg, want := range map[string]bool{
				"evaluation started": tt.debug,
				"metrics written":    tt.info,
				"evaluation failed":  tt.error,
			} {
				if strings.Contains(out, msg) != want {
					t.Errorf("entry %q present = %v, want %v:\n%s", msg, !want, want, out)
				}
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "generate-golden").Info("golden file written", String("path", "golden.json"), Int("cases", 29))

	entry := decode(t, &buf)
	if entry["level"] != "info" || entry["component"] != "generate-golden" || entry["message"] != "golden file written" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["path"] != "golden.json" || entry["cases"] != float64(29) {
		t.Errorf("fields not encoded: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Error("entry has no timestamp")
	}
}

func TestErrorAttachesCause(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLogger(&buf, "padicalc").Error("evaluation failed", errors.New("padic: log: argument outside domain"),
		String("prime", "5"), String("kind", "domain"))

	entry := decode(t, &buf)
	if entry["error"] != "padic: log: argument outside domain" {
		t.Errorf("error = %v", entry["error"])
	}
	if entry["prime"] != "5" || entry["kind"] != "domain" {
		t.Errorf("fields not encoded: %v", entry)
	}

	buf.Reset()
	NewLogger(&buf, "padicalc").Error("no cause", nil)
	if _, ok := decode(t, &buf)["error"]; ok {
		t.Error("a nil error should not add an error key")
	}
}

func TestApplyFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	NewLeveledLogger(&buf, "padicalc", zerolog.DebugLevel).Debug("evaluation started",
		String("op", "exp"),
		Int("precision", 10),
		Bool("verify", true),
		Field{Key: "primes", Value: []int{2, 3, 5}})

	entry := decode(t, &buf)
	if entry["op"] != "exp" {
		t.Errorf("string field = %v", entry["op"])
	}
	if entry["precision"] != float64(10) {
		t.Errorf("int field = %v", entry["precision"])
	}
	if entry["verify"] != true {
		t.Errorf("bool field = %v", entry["verify"])
	}
	if primes, ok := entry["primes"].([]any); !ok || len(primes) != 3 {
		t.Errorf("interface field = %v", entry["primes"])
	}
}

func TestZerologAdapterImplementsLogger(t *testing.T) {
	var _ Logger = NewZerologAdapter(zerolog.Nop())
}
