package stdout

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/trailshift/internal/model"
	"github.com/crimson-sun/trailshift/internal/output"
)

func testSummary() model.DailySummary {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return model.DailySummary{
		Actor:           "alice",
		Date:            "2024-01-01",
		StartTime:       start,
		EndTime:         start.Add(8*time.Hour + 30*time.Minute),
		Duration:        8*time.Hour + 30*time.Minute,
		ActivityCount:   2,
		FirstAction:     "ConsoleLogin",
		LastAction:      "GetObject",
		SourceIPAddress: "198.51.100.1",
	}
}

// captureStdout redirects os.Stdout to capture output.
func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestOutputTableWithTitle(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Table, WithTitle("IAM user working hours"))
		require.NoError(t, out.Write(context.Background(), []model.DailySummary{testSummary()}))
	})

	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, strings.Repeat("=", 80), lines[0])
	assert.Equal(t, "IAM user working hours", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "User"))
	assert.Contains(t, lines[4], "8:30:00")
}

func TestOutputJSONHasNoTitle(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.JSON, WithTitle("ignored"))
		require.NoError(t, out.Write(context.Background(), []model.DailySummary{testSummary()}))
	})

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0]["user"])
}

func TestOutputNotice(t *testing.T) {
	result := captureStdout(func() {
		out := New(output.Table)
		require.NoError(t, out.WriteNotice(context.Background(), output.NoActivityNotice))
		require.NoError(t, out.Close())
	})
	assert.Equal(t, output.NoActivityNotice+"\n", result)
}
