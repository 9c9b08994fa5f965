package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMessage = "test message"

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logDebug bool
	}{
		{name: "debug_level", level: "debug", logDebug: true},
		{name: "info_level", level: "info", logDebug: false},
		{name: "invalid_level_defaults_to_info", level: "verbose", logDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(tt.level, false, &buf)

			l.Debug().Msg(testMessage)
			assert.Equal(t, tt.logDebug, buf.Len() > 0)
		})
	}
}

func TestZeroLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("debug", false, &buf)

	tests := []struct {
		level string
		event func() LogEvent
	}{
		{"debug", l.Debug},
		{"info", l.Info},
		{"warn", l.Warn},
		{"error", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.event().Msg(testMessage)
			entry := decodeLine(t, &buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, testMessage, entry["message"])
		})
	}
}

func TestLogEventAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("debug", false, &buf)

	l.Info().
		Str("table", "users").
		Int("count", 3).
		Err(errors.New("boom")).
		Msg("rendered query")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "users", entry["table"])
	assert.EqualValues(t, 3, entry["count"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "rendered query", entry["message"])
}

func TestSensitiveFieldsAreMasked(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("debug", false, &buf)

	l.WithFields(map[string]any{
		"binds": map[string]any{"name": "Bob", "api_token": "abc"},
	}).Debug().
		Str("password", "hunter2").
		Msg(testMessage)

	entry := decodeLine(t, &buf)
	assert.Equal(t, DefaultMaskValue, entry["password"])
	assert.Equal(t, map[string]any{"name": "Bob", "api_token": DefaultMaskValue}, entry["binds"])
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", false, &buf).WithFields(map[string]any{
		"vendor": "postgresql",
		"secret": "s3cr3t",
	})

	l.Info().Msg(testMessage)
	entry := decodeLine(t, &buf)
	assert.Equal(t, "postgresql", entry["vendor"])
	assert.Equal(t, DefaultMaskValue, entry["secret"])
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", true, &buf)
	l.Info().Str("table", "users").Msg(testMessage)
	assert.Contains(t, buf.String(), testMessage)
	assert.Contains(t, buf.String(), "table=users")
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Info().Str("k", "v").Msg(testMessage)
		l.WithFields(map[string]any{"k": "v"}).Error().Msg(testMessage)
	})
}

func TestNewSensitiveDataFilterDefaults(t *testing.T) {
	f := NewSensitiveDataFilter(&FilterConfig{SensitiveFields: []string{"pin"}})
	assert.Equal(t, DefaultMaskValue, f.FilterString("PIN", "1234"))
	assert.Equal(t, "", f.FilterString("pin", ""))
	assert.Equal(t, "Bob", f.FilterString("name", "Bob"))

	f = NewSensitiveDataFilter(nil)
	assert.Equal(t, DefaultMaskValue, f.FilterValue("db_password", 42))
}
