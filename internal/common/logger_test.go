package common

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogError(t *testing.T) {
	buf := captureLogs(t)

	LogError(assert.AnError, "save failed", Fields{"account": "acc-1"})

	out := buf.String()
	assert.Contains(t, out, "save failed")
	assert.Contains(t, out, assert.AnError.Error())
	assert.Contains(t, out, `"account":"acc-1"`)
	assert.Contains(t, out, `"level":"ERROR"`)
}

func TestLogDebug(t *testing.T) {
	buf := captureLogs(t)

	LogDebug("recorded transaction", Fields{"type": "expense"})

	out := buf.String()
	assert.Contains(t, out, "recorded transaction")
	assert.Contains(t, out, `"type":"expense"`)
	assert.Contains(t, out, `"level":"DEBUG"`)
}

func TestLogDebugNilFields(t *testing.T) {
	buf := captureLogs(t)

	LogDebug("no saved snapshot, seeding", nil)

	assert.Contains(t, buf.String(), "no saved snapshot, seeding")
}
