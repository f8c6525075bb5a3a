package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"routereel/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const appName = "routereel"

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New builds the service logger on stdout.
func New(params Params) (*slog.Logger, error) {
	return NewWithWriter(params.Config.Env.Log, os.Stdout)
}

// NewWithWriter builds a logger writing to w. The headless CLI logs to
// stderr so stdout stays free for the progress bar.
func NewWithWriter(cfg config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Pretty {
		handler = slog.NewTextHandler(w, opts)
	} else {
		opts.ReplaceAttr = readableDurations
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("app", appName)), nil
}

// readableDurations renders durations as "1.5s" instead of nanoseconds.
func readableDurations(_ []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindDuration {
		return slog.String(attr.Key, attr.Value.Duration().String())
	}

	return attr
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level %q", level)
	}
}
