package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, LogLevelDebug, level)

	level, ok = ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, LogLevelInfo, level)
}

func TestLevelFilteringAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelWarn)
	logger.SetOutput(log.New(&buf, "", 0))

	reg := logger.With("Registry")
	reg.Info("hidden %d", 1)
	reg.Warn("loaded %d tables", 6)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Equal(t, "[WARN] [Registry] loaded 6 tables\n", buf.String())
}
