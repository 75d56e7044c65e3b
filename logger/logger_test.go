package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, logrus.DebugLevel)

	l.Debug("Listing directory", "path", "/sdcard/DCIM")

	out := buf.String()
	assert.Contains(t, out, "Listing directory")
	assert.Contains(t, out, "path=/sdcard/DCIM")
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, logrus.WarnLevel)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFieldsOddArgs(t *testing.T) {
	f := fields([]interface{}{"path", "/a", "dangling"})
	assert.Equal(t, "/a", f["path"])
	assert.Equal(t, "dangling", f["!BADKEY"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("nonsense"))
}
