package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

func Config(ctx context.Context, level string) {
	slog.SetDefault(New(os.Stdout, level))
	slog.DebugContext(ctx, "logger configured", "level", ParseLevel(level).String())
}

// New builds the JSON logger the service writes with: "level" is reported as
// a lower-case "severity" and "msg" as "message".
func New(w io.Writer, level string) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				lowerCaseLevel := strings.ToLower(a.Value.String())

				return slog.Attr{
					Key:   "severity",
					Value: slog.StringValue(lowerCaseLevel),
				}
			}

			if a.Key == slog.MessageKey {
				return slog.Attr{
					Key:   "message",
					Value: a.Value,
				}
			}

			return a
		},
	})

	return slog.New(jsonHandler)
}

// ParseLevel falls back to info for anything it does not know.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
