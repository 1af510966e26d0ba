// Package logging wires up the structured diagnostic logger the CLI uses
// for warnings and progress messages, including errors that the driver's
// watch loop reports back through its callback. The decoders themselves
// do not log.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	slogmulti "github.com/samber/slog-multi"
)

// New builds the package logger. At normal verbosity only Info-and-above
// records reach stderr; under verbose, Debug records (decode notices) are
// included too. The handler chain goes through slog-multi's Fanout even
// though a single handler sits behind it today, so a second sink (a JSON
// file handler, say) is a one-line addition later.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slogmulti.Fanout(
		&colorHandler{level: level, w: os.Stderr},
	)

	return slog.New(handler)
}

// colorHandler renders log records as a single line with a colorized
// level prefix. w defaults to os.Stderr in New but is a field so tests
// can capture output.
type colorHandler struct {
	level slog.Level
	attrs []slog.Attr
	w     io.Writer
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	levelColor := levelColorFor(r.Level)
	prefix := levelColor.Sprintf("%-5s", r.Level.String())

	msg := r.Message
	for _, a := range h.attrs {
		msg += " " + a.Key + "=" + a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		msg += " " + a.Key + "=" + a.Value.String()
		return true
	})

	_, err := io.WriteString(h.w, prefix+" "+msg+"\n")
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &colorHandler{level: h.level, w: h.w, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
	return next
}

func (h *colorHandler) WithGroup(_ string) slog.Handler {
	return h
}

func levelColorFor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case level >= slog.LevelInfo:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgHiBlack)
	}
}
