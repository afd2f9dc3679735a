package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusLoggerFields(t *testing.T) {
	nullLogger, hook := logrustest.NewNullLogger()
	logger := NewLogrusLogger(nullLogger)

	logger.WithFields(Fields{"stage": "caption"}).Log("done")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "done", entry.Message)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "caption", entry.Data["stage"])

	logger.Error(errors.New("boom"), "failed")
	entry = hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "boom")
}

func TestFileLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	logger := NewFileLogger(path, "debug")
	logger.WithFields(Fields{"request_id": "r1"}).Log("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"request_id":"r1"`)
}
