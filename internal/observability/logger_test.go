// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warwalk/internal/config"
)

// syncBuffer adapts bytes.Buffer to zapcore.WriteSyncer for test capture.
type syncBuffer struct {
	bytes.Buffer
}

func (b *syncBuffer) Sync() error { return nil }

func TestInitialize(t *testing.T) {
	t.Run("console format is colorized", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "testsvc",
		}, &buf)

		GetLogger().Info("replay starting")
		output := buf.String()

		assert.Contains(t, output, "INFO")
		assert.Contains(t, output, "replay starting")
		assert.Contains(t, output, colorGreen, "info level should be colorized green")
		assert.Contains(t, output, "testsvc.", "service name should prefix the logger name")
	})

	t.Run("json format emits structured lines", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "testsvc",
		}, &buf)

		GetLogger().Warn("portal stalled")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "portal stalled", entry["msg"])
	})

	t.Run("level filtering drops debug lines", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "warn",
			Format:      "console",
			ServiceName: "testsvc",
		}, &buf)

		GetLogger().Info("too quiet")
		assert.Empty(t, buf.String())
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "extremely-loud",
			Format:      "console",
			ServiceName: "testsvc",
		}, &buf)

		GetLogger().Info("still logged")
		assert.Contains(t, buf.String(), "still logged")
	})

	t.Run("second initialize is a no-op", func(t *testing.T) {
		ResetForTest()
		var first, second syncBuffer

		Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "one"}, &first)
		Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "two"}, &second)

		GetLogger().Info("hello")
		assert.Contains(t, first.String(), "hello")
		assert.Empty(t, second.String())
	})
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	logger := GetLogger()
	require.NotNil(t, logger, "uninitialized logger must still be usable")
	assert.NotPanics(t, func() { logger.Info("fallback logger works") })
}
