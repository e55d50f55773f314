package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerAdapter_KeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewLoggerAdapter(zap.New(core))

	log.WithField("specialist", "google").Warn("Instruction validation issues", "length", 42)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "Instruction validation issues", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "google", fields["specialist"])
	assert.EqualValues(t, 42, fields["length"])
}

func TestLoggerAdapter_WithFieldsDoesNotLeak(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := NewLoggerAdapter(zap.New(core))

	base.WithFields(map[string]any{"plan": "PRO"}).Info("child")
	base.Info("parent")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].ContextMap(), "plan")
	assert.NotContains(t, entries[1].ContextMap(), "plan")
}

func TestNew_WritesFileUnderDir(t *testing.T) {
	dir := t.TempDir()

	log, err := New(Config{Level: "debug", Format: "json", Dir: dir}, "run acme/ventures")
	require.NoError(t, err)

	log.Info("hello", "k", "v")
	require.NoError(t, log.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "*_run_acme_ventures.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"k":"v"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "agent", sanitize("///"))
	assert.Equal(t, "a_b-c", sanitize("a b-c"))
	assert.Len(t, sanitize(string(make([]byte, 100))+"x"), 1)
}
