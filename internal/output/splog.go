// Package output provides console and file logging for sitepub commands.
package output

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// styleKey is the record attribute naming the console style of a line.
// Only the console handler renders it; file logs keep the plain message.
const styleKey = "style"

const (
	styleCommand = "command"
	styleSuccess = "success"
	styleWarn    = "warn"
	styleError   = "error"
	styleTip     = "tip"
	styleLabel   = "label"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
	styles    Styles
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	msg := record.Message
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == styleKey {
			msg = h.render(a.Value.String(), msg)
			return false
		}
		return true
	})
	_, err := fmt.Fprintln(h.writer, msg)
	return err
}

func (h *simpleHandler) render(style, msg string) string {
	switch style {
	case styleSuccess:
		return "✅ " + h.styles.Success.Render(msg)
	case styleWarn:
		return "⚠️  " + h.styles.Warn.Render(msg)
	case styleError:
		return "❌ " + h.styles.Error.Render(msg)
	case styleTip:
		return "💡 " + msg
	case styleCommand:
		return h.styles.Command.Render(msg)
	case styleLabel:
		return h.styles.Label.Render(msg)
	}
	return msg
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog writes human-readable progress lines and mirrors them to an
// optional rotating log file.
type Splog struct {
	logger    *slog.Logger
	writer    io.Writer
	logWriter io.WriteCloser
}

// NewSplog creates a new splog instance writing to stdout.
// Debug messages are enabled when the DEBUG environment variable is set.
func NewSplog() *Splog {
	splog, _ := NewSplogWithConfig(os.Stdout, "")
	return splog
}

// NewSplogWithConfig creates a splog writing to w, with file logging when
// logFilePath is not empty.
func NewSplogWithConfig(w io.Writer, logFilePath string) (*Splog, error) {
	splog := &Splog{writer: w}

	handlers := []slog.Handler{&simpleHandler{
		writer:    w,
		debugMode: os.Getenv("DEBUG") != "",
		styles:    NewStyles(),
	}}

	if logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(logFilePath)
		splog.logWriter = lumberjackLogger

		// File logs always carry timestamps and debug lines
		handlers = append(handlers, slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		}))
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})
	return splog, nil
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

func (s *Splog) log(level slog.Level, msg string) {
	s.logger.Log(context.Background(), level, msg)
}

func (s *Splog) logStyled(level slog.Level, style, msg string) {
	s.logger.LogAttrs(context.Background(), level, msg, slog.String(styleKey, style))
}

// Info writes an info message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(msg string, args ...interface{}) {
	s.log(slog.LevelInfo, format(msg, args))
}

// Success writes a message for a completed step
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Success(msg string, args ...interface{}) {
	s.logStyled(slog.LevelInfo, styleSuccess, format(msg, args))
}

// Warn writes a warning message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(msg string, args ...interface{}) {
	s.logStyled(slog.LevelWarn, styleWarn, format(msg, args))
}

// Error writes an error message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(msg string, args ...interface{}) {
	s.logStyled(slog.LevelError, styleError, format(msg, args))
}

// Debug writes a debug message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(msg string, args ...interface{}) {
	s.log(slog.LevelDebug, format(msg, args))
}

// Tip writes a tip message
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Tip(msg string, args ...interface{}) {
	s.logStyled(slog.LevelInfo, styleTip, format(msg, args))
}

// Command echoes an external command line before it runs
func (s *Splog) Command(name string, args []string) {
	line := "$ " + name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	s.logStyled(slog.LevelInfo, styleCommand, line)
}

// Heading writes a section label
func (s *Splog) Heading(msg string) {
	s.logStyled(slog.LevelInfo, styleLabel, msg)
}

// Newline writes a newline
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
