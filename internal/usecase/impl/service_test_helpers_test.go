package impl

import (
	"io"
	"log/slog"
	"time"

	"member/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.AccessTTL = 24 * time.Hour
	cfg.Auth.RefreshTTL = 14 * 24 * time.Hour
	cfg.Auth.AuthCodeTTL = 5 * time.Minute
	cfg.Auth.BcryptCost = 12

	return cfg
}
