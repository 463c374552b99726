// Package logs builds the service-wide slog.Logger from the member
// configuration. Every log line carries the service name so aggregated
// output from several deployments stays attributable.
package logs

import (
	"log/slog"
	"os"
	"strings"

	"member/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New creates the root slog.Logger. Local development usually runs with
// log.pretty enabled for human-readable text output; deployed environments
// emit JSON for the log pipeline.
func New(params Params) (*slog.Logger, error) {
	level, err := parseLogLevel(params.Config.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	logger := slog.New(newHandler(params.Config.Env.Log.Pretty, level))

	return logger.With(slog.String("service", params.Config.Env.ServiceName)), nil
}

func newHandler(pretty bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if pretty {
		return slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.NewJSONHandler(os.Stdout, opts)
}

// parseLogLevel converts the configured log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
