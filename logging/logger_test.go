package logging

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("test-component")
	require.NotNil(t, logger)

	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}

	// Loggers are cached per component
	assert.Same(t, logger, NewLogger("test-component"))
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{Config: FormatConfig{}})

	entry := logger.WithField("component", "test")
	entry.Info("Test message")

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "[test]")
	assert.Contains(t, output, "Test message")
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "resolved field",
				Data: logrus.Fields{
					"component": "generator",
					"field":     "email",
					"source":    "column",
				},
			},
			want: []string{"[INFO]", "[generator]", "resolved field", "field=email source=column"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "warning message",
				Data: logrus.Fields{
					"component": "generator",
				},
			},
			want:    []string{"[WARN]", "warning message"},
			notWant: []string{"[generator]"},
		},
		{
			name:   "caller information with function name",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "test message with caller",
					Data: logrus.Fields{
						"component": "catalog",
					},
					Caller: &runtime.Frame{
						File:     "/path/to/file.go",
						Line:     42,
						Function: "github.com/example/package.TestFunction",
					},
				}
			}(),
			want: []string{"[INFO]", "[catalog]", "[file.go:42 package.TestFunction]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}
			tt.entry.Time = tt.entry.Time.UTC()

			output, err := formatter.Format(tt.entry)
			require.NoError(t, err)

			outputStr := string(output)
			for _, want := range tt.want {
				assert.Contains(t, outputStr, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, outputStr, notWant)
			}
		})
	}
}

func TestNewLoggerWithConfig(t *testing.T) {
	t.Setenv("BPSCHEMA_LOG_LEVEL", "")

	logPath := filepath.Join(t.TempDir(), "logs", "bpschema.log")
	entry := NewLoggerWithConfig("catalog", Config{
		Level: "debug",
		File:  FileSinkConfig{Enabled: true, Path: logPath},
		Format: FormatConfig{
			Preset:             "json",
			StructuredToStderr: "never",
		},
	})

	assert.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, entry.Logger.Formatter)

	entry.WithField("serializer", "UserBlueprint").Debug("loaded")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"serializer":"UserBlueprint"`)
	assert.Contains(t, string(data), `"component":"catalog"`)
}

func TestEnvLevelOverridesConfig(t *testing.T) {
	t.Setenv("BPSCHEMA_LOG_LEVEL", "error")

	entry := NewLoggerWithConfig("cli", Config{Level: "debug", Format: FormatConfig{StructuredToStderr: "never"}})
	assert.Equal(t, logrus.ErrorLevel, entry.Logger.GetLevel())
	assert.Equal(t, io.Discard, entry.Logger.Out)
}

func TestShouldLogToStderr(t *testing.T) {
	assert.True(t, shouldLogToStderr("always", logrus.InfoLevel))
	assert.False(t, shouldLogToStderr("never", logrus.DebugLevel))
	assert.True(t, shouldLogToStderr("auto", logrus.DebugLevel))
}

func TestDiscard(t *testing.T) {
	entry := Discard("generator")
	assert.Equal(t, io.Discard, entry.Logger.Out)
	assert.Equal(t, "generator", entry.Data["component"])
}

func TestPrettyLogger(t *testing.T) {
	tests := []struct {
		name   string
		render func(p *PrettyLogger)
		want   []string
	}{
		{
			name:   "source",
			render: func(p *PrettyLogger) { p.Source("Catalog", "schemas/catalog.yml") },
			want:   []string{"Catalog", "schemas/catalog.yml"},
		},
		{
			name:   "passing verdict",
			render: func(p *PrettyLogger) { p.Verdict(2, nil) },
			want:   []string{"✓", "2", "serializer(s) produce valid schemas"},
		},
		{
			name:   "failing verdict",
			render: func(p *PrettyLogger) { p.Verdict(3, errors.New("view 'compact' not found")) },
			want:   []string{"✗", "3", "serializer(s) checked", "view 'compact' not found"},
		},
		{
			name:   "failed step",
			render: func(p *PrettyLogger) { p.StepFailed("Reload", errors.New("boom")) },
			want:   []string{"✗", "Reload", "failed", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.render(NewPrettyLogger().WithWriter(&buf))

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Expected output to contain %q, got: %s", want, output)
				}
			}
		})
	}
}
