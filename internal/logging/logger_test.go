package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerIsSilent(t *testing.T) {
	var l Logger
	l.Infof("hello %d", 1)
	l.Verbosef("hidden")
	l.Measure("noop")()
}

func TestVerbosefOnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	quiet, closeQuiet, err := New(&buf, false, "")
	require.NoError(t, err)
	quiet.Verbosef("hidden detail")
	quiet.Infof("visible %s", "info")
	closeQuiet()

	out := buf.String()
	assert.NotContains(t, out, "hidden detail")
	assert.Contains(t, out, "visible info")

	buf.Reset()
	loud, closeLoud, err := New(&buf, true, "")
	require.NoError(t, err)
	loud.Verbosef("shown detail")
	loud.Measure("step")()
	closeLoud()

	assert.Contains(t, buf.String(), "shown detail")
	assert.Contains(t, buf.String(), "step")
}

func TestLogFileReceivesDebugEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	var buf bytes.Buffer

	l, closeLog, err := New(&buf, false, path)
	require.NoError(t, err)
	l.Warnf("server said %d", 500)
	l.Zap().Debug("debug only in file")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "server said 500")
	assert.Contains(t, string(data), "debug only in file")
	assert.NotContains(t, buf.String(), "debug only in file")
}
