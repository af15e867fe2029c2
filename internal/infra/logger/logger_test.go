package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestToFieldsPairsKeysAndValues(t *testing.T) {
	fields := toFields([]interface{}{"entry", 3, "now", "09:00", 42, "ignored", "dangling"})
	require.Equal(t, logrus.Fields{"entry": 3, "now": "09:00"}, fields)
}

func TestCronLoggerWritesThroughLogrus(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{})

	l := CronLogger(logrus.NewEntry(base).WithField("component", "scheduler"))
	l.Info("skip", "entry", 1)
	l.Error(errors.New("boom"), "panic", "stack", "...")

	out := buf.String()
	require.Contains(t, out, `"msg":"skip"`)
	require.Contains(t, out, `"level":"debug"`)
	require.Contains(t, out, `"error":"boom"`)
	require.Contains(t, out, `"component":"scheduler"`)
}
