package logger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/pastorprompt/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2025, 7, 2, 10, 30, 0, 0, time.UTC)
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithClock(fixedClock))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "2025-07-02 10:30:00.000 WARN")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithClock(fixedClock)).
		WithPrefix("api").
		WithFields(map[string]any{"status": 201, "method": "POST"})

	log.Info("request completed")

	out := buf.String()
	assert.Contains(t, out, "[api]")
	assert.Contains(t, out, "request completed method=POST status=201\n")
}

func TestLogger_DerivedDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := logger.New(logger.WithOutput(&buf), logger.WithClock(fixedClock))
	_ = parent.WithField("folder_id", 7)

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "folder_id")
}

func TestLookupLevel(t *testing.T) {
	level, ok := logger.LookupLevel("warning")
	assert.True(t, ok)
	assert.Equal(t, logger.WARN, level)

	_, ok = logger.LookupLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, logger.INFO, logger.ParseLevel("verbose"))
}

func TestFromContext(t *testing.T) {
	log := logger.New(logger.WithPrefix("ctx"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
