package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func fixedTime() time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func TestColorHandler_HandleWritesLevelAndMessage(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	var buf bytes.Buffer
	h := &colorHandler{level: slog.LevelInfo, w: &buf}

	r := slog.NewRecord(fixedTime(), slog.LevelInfo, "decoded header", 0)
	r.AddAttrs(slog.String("file", "a.o"))

	err := h.Handle(context.Background(), r)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "INFO")
	assert.Contains(t, buf.String(), "decoded header")
	assert.Contains(t, buf.String(), "file=a.o")
}

func TestColorHandler_EnabledRespectsLevel(t *testing.T) {
	h := &colorHandler{level: slog.LevelInfo}
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestColorHandler_WithAttrsCarriesWriterAndLevel(t *testing.T) {
	var buf bytes.Buffer
	h := &colorHandler{level: slog.LevelWarn, w: &buf}
	next := h.WithAttrs([]slog.Attr{slog.String("segment", "__DWARF")}).(*colorHandler)

	assert.Equal(t, slog.LevelWarn, next.level)
	assert.Same(t, &buf, next.w.(*bytes.Buffer))

	r := slog.NewRecord(fixedTime(), slog.LevelWarn, "missing section", 0)
	assert.NoError(t, next.Handle(context.Background(), r))
	assert.Contains(t, buf.String(), "segment=__DWARF")
}
