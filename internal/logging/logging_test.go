package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initBuffer points the global logger at a buffer for the duration of a
// test and restores the default configuration afterwards.
func initBuffer(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = &buf
	Init(cfg)
	t.Cleanup(func() {
		Close()
		Init(DefaultConfig())
	})
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, InfoLevel, cfg.Level)
	assert.Equal(t, os.Stderr, cfg.Output)
	assert.False(t, cfg.Pretty)
	assert.Equal(t, time.RFC3339, cfg.TimeFormat)
	assert.False(t, cfg.LogToFile)
	assert.Equal(t, "/tmp", cfg.LogDir)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Level
	}{
		{"debug upper", "DEBUG", DebugLevel},
		{"debug lower", "debug", DebugLevel},
		{"surrounding whitespace", "  DEBUG  ", DebugLevel},
		{"info", "info", InfoLevel},
		{"warn", "warn", WarnLevel},
		{"warning alias", "WARNING", WarnLevel},
		{"error", "error", ErrorLevel},
		{"fatal", "FATAL", FatalLevel},
		{"unrecognized", "verbose", InfoLevel},
		{"empty", "", InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		emitted []string
		dropped []string
	}{
		{
			name:    "debug passes everything",
			level:   DebugLevel,
			emitted: []string{"debug line", "info line", "warn line", "error line"},
		},
		{
			name:    "warn drops debug and info",
			level:   WarnLevel,
			emitted: []string{"warn line", "error line"},
			dropped: []string{"debug line", "info line"},
		},
		{
			name:    "error drops everything below",
			level:   ErrorLevel,
			emitted: []string{"error line"},
			dropped: []string{"debug line", "info line", "warn line"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := initBuffer(t, Config{Level: tt.level})

			Debug().Msg("debug line")
			Info().Msg("info line")
			Warn().Msg("warn line")
			Error().Msg("error line")

			out := buf.String()
			for _, msg := range tt.emitted {
				assert.Contains(t, out, msg)
			}
			for _, msg := range tt.dropped {
				assert.NotContains(t, out, msg)
			}
		})
	}
}

func TestStructuredFields(t *testing.T) {
	buf := initBuffer(t, Config{Level: InfoLevel})

	Info().
		Str("kind", "camera").
		Int("attempt", 2).
		Bool("cached", false).
		Msg("status resolved")

	out := buf.String()
	assert.Contains(t, out, `"kind":"camera"`)
	assert.Contains(t, out, `"attempt":2`)
	assert.Contains(t, out, `"cached":false`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestErrorField(t *testing.T) {
	buf := initBuffer(t, Config{Level: InfoLevel})

	Error().Err(os.ErrPermission).Msg("request failed")

	out := buf.String()
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, os.ErrPermission.Error())
}

func TestPrettyOutput(t *testing.T) {
	buf := initBuffer(t, Config{Level: InfoLevel, Pretty: true})

	Info().Msg("console line")

	// Console output is human-formatted rather than JSON.
	out := buf.String()
	assert.Contains(t, out, "console line")
	assert.NotContains(t, out, `"message"`)
}

func TestWithChildLogger(t *testing.T) {
	buf := initBuffer(t, Config{Level: InfoLevel})

	child := With().Str("component", "manager").Logger()
	child.Info().Msg("from child")

	out := buf.String()
	assert.Contains(t, out, `"component":"manager"`)
	assert.Contains(t, out, "from child")
}

func TestInitDefaults(t *testing.T) {
	// Zero-value fields fall back to usable defaults instead of panicking.
	Init(Config{Level: InfoLevel})
	t.Cleanup(func() { Init(DefaultConfig()) })

	buf := initBuffer(t, Config{Level: InfoLevel, TimeFormat: ""})
	Info().Msg("default time format")
	assert.Contains(t, buf.String(), "default time format")
}

func TestLogToFile(t *testing.T) {
	dir := t.TempDir()
	initBuffer(t, Config{Level: InfoLevel, LogToFile: true, LogDir: dir})

	Info().Msg("written to disk")

	path := GetLogFilePath()
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))

	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "sysperm-"), "unexpected file name %q", base)
	assert.True(t, strings.HasSuffix(base, ".log"), "unexpected file name %q", base)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to disk")
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("empty without file logging", func(t *testing.T) {
		initBuffer(t, Config{Level: InfoLevel})
		assert.Empty(t, GetLogFilePath())
	})

	t.Run("cleared by close", func(t *testing.T) {
		initBuffer(t, Config{Level: InfoLevel, LogToFile: true, LogDir: t.TempDir()})
		require.NotEmpty(t, GetLogFilePath())

		Close()
		assert.Empty(t, GetLogFilePath())
	})
}

func TestReinitRotatesLogFile(t *testing.T) {
	dir := t.TempDir()

	initBuffer(t, Config{Level: InfoLevel, LogToFile: true, LogDir: dir})
	first := GetLogFilePath()
	require.NotEmpty(t, first)

	// File names carry a second-resolution timestamp.
	time.Sleep(1100 * time.Millisecond)

	initBuffer(t, Config{Level: InfoLevel, LogToFile: true, LogDir: dir})
	second := GetLogFilePath()
	require.NotEmpty(t, second)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first, "rotated file is closed, not removed")
	assert.FileExists(t, second)
}
