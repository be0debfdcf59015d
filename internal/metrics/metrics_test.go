package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/padicalc/internal/padic"
)

func TestObserveOperation(t *testing.T) {
	t.Parallel()
	m := New()

	m.ObserveOperation("log", 20, 3*time.Millisecond)
	m.ObserveOperation("log", 20, time.Millisecond)
	m.ObserveOperation("add", 10, time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("log")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("add")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestObserveError(t *testing.T) {
	t.Parallel()
	m := New()
	ctx := padic.MustNewContext(5)

	_, err := padic.Log(padic.FromInt64(ctx, 2))
	require.Error(t, err)
	m.ObserveError(err)
	m.ObserveError(fmt.Errorf("wrapped: %w", err))
	m.ObserveError(errors.New("unrelated"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.errors.WithLabelValues("domain")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("other")))
}

func TestErrorKind(t *testing.T) {
	t.Parallel()
	ctx := padic.MustNewContext(7)
	_, parseErr := padic.Parse(ctx, "1 + 2*3^1")
	_, divErr := padic.FromInt64(ctx, 1).Div(padic.NewNumber(ctx))
	_, primeErr := padic.NewContextInt64(0)

	assert.Equal(t, "context_mismatch", ErrorKind(parseErr))
	assert.Equal(t, "division_by_zero", ErrorKind(divErr))
	assert.Equal(t, "invalid_prime", ErrorKind(primeErr))
	assert.Equal(t, "timeout", ErrorKind(fmt.Errorf("p = 7: %w", context.DeadlineExceeded)))
	assert.Equal(t, "canceled", ErrorKind(context.Canceled))
	assert.Equal(t, "other", ErrorKind(nil))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()
	m := New()
	m.ObserveOperation("exp", 20, 2*time.Millisecond)

	path := filepath.Join(t.TempDir(), "padicalc.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	for _, name := range []string{
		`padicalc_operations_total{op="exp"} 1`,
		"padicalc_result_precision_bucket",
		"padicalc_operation_duration_seconds_count",
		"go_goroutines",
	} {
		assert.True(t, strings.Contains(text, name), "textfile is missing %s", name)
	}
}
