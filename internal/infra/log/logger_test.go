package logs

import (
	"log/slog"
	"testing"

	"member/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggerConfig(level string, pretty bool) *config.Config {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "member"
	cfg.Env.Log.Level = level
	cfg.Env.Log.Pretty = pretty

	return cfg
}

func TestNew(t *testing.T) {
	t.Run("builds logger with configured level", func(t *testing.T) {
		logger, err := New(Params{Config: newLoggerConfig("warn", false)})

		require.NoError(t, err)
		assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
		assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	})

	t.Run("unknown level fails startup", func(t *testing.T) {
		_, err := New(Params{Config: newLoggerConfig("verbose", false)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown log level")
	})
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"Error": slog.LevelError,
	}

	for input, want := range cases {
		level, err := parseLogLevel(input)

		require.NoError(t, err)
		assert.Equal(t, want, level)
	}
}
