package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
		wantErr  bool
	}{
		{name: "debug", expected: slog.LevelDebug},
		{name: "INFO", expected: slog.LevelInfo},
		{name: "", expected: slog.LevelInfo},
		{name: "warning", expected: slog.LevelWarn},
		{name: "error", expected: slog.LevelError},
		{name: "verbose", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, lvl)
		})
	}
}

func TestInitLoggerFlushesPreLogAndFilters(t *testing.T) {
	var diag, results bytes.Buffer
	SetOutput(&diag, &results)
	t.Cleanup(func() {
		_ = Close()
		SetOutput(os.Stderr, os.Stdout)
	})

	logDir := filepath.Join(t.TempDir(), "logs")

	SetPreLogLevel("debug")
	PreLog("DEBUG", "loading %s", "javaboot.toml")
	require.NoError(t, InitLogger(logDir, "info", false))

	LogDebug("hidden on console")
	LogInfo("visible %d", 1)
	LogOutput("result")

	assert.NotContains(t, diag.String(), "hidden on console")
	assert.NotContains(t, diag.String(), "loading javaboot.toml")
	assert.Contains(t, diag.String(), "visible 1")
	assert.Equal(t, "result\n", results.String())

	require.NoError(t, Close())
	content, err := os.ReadFile(filepath.Join(logDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "loading javaboot.toml")
	assert.Contains(t, string(content), "visible 1")
}

func TestJSONLogs(t *testing.T) {
	var diag, results bytes.Buffer
	SetOutput(&diag, &results)
	t.Cleanup(func() { SetOutput(os.Stderr, os.Stdout) })

	require.NoError(t, InitLogger("", "info", true))
	LogError("boom")

	assert.Contains(t, diag.String(), `"level":"ERROR"`)
	assert.Contains(t, diag.String(), `"msg":"boom"`)
}
