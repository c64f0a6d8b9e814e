package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestNewLogger(t *testing.T) {
	t.Run("Should drop messages below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: WarnLevel, Output: &buf})

		log.Info("hidden")
		log.Warn("shown", "block", 3)

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
		assert.Contains(t, out, "block=3")
	})

	t.Run("Should emit JSON when requested", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})

		log.Debug("group", "index", 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
		assert.Equal(t, "group", entry["msg"])
		assert.Equal(t, float64(1), entry["index"])
	})
}

func TestInit(t *testing.T) {
	prev := GetDefault()
	t.Cleanup(func() { defaultLogger = prev })

	var buf bytes.Buffer
	Init(&Config{Level: InfoLevel, Output: &buf})
	Info("hello", "file", "a.ipynb")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "file=a.ipynb")
}
