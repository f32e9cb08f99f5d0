package observability

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// charmLogger forwards to a charmbracelet/log logger, flattening fields into
// alternating key/value pairs.
type charmLogger struct{ l *log.Logger }

// NewCharmLogger writes human-readable, timestamped records to w at or above
// level.
func NewCharmLogger(w io.Writer, level log.Level) Logger {
	return charmLogger{l: log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})}
}

// FromCharm wraps an existing charmbracelet/log logger.
func FromCharm(l *log.Logger) Logger { return charmLogger{l: l} }

func (c charmLogger) Debug(msg string, fields ...Field) { c.l.Debug(msg, keyvals(fields)...) }
func (c charmLogger) Info(msg string, fields ...Field)  { c.l.Info(msg, keyvals(fields)...) }
func (c charmLogger) Warn(msg string, fields ...Field)  { c.l.Warn(msg, keyvals(fields)...) }
func (c charmLogger) Error(msg string, fields ...Field) { c.l.Error(msg, keyvals(fields)...) }
func (c charmLogger) With(fields ...Field) Logger {
	return charmLogger{l: c.l.With(keyvals(fields)...)}
}

func keyvals(fields []Field) []interface{} {
	out := make([]interface{}, 0, 2*len(fields))
	for _, f := range fields {
		out = append(out, f.Key(), f.Value())
	}
	return out
}

// ParseLevel accepts the charmbracelet/log level names plus "warning". An
// empty string means info.
func ParseLevel(s string) (log.Level, error) {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "":
		return log.InfoLevel, nil
	case "warning":
		return log.WarnLevel, nil
	}
	return log.ParseLevel(s)
}
