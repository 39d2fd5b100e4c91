// Package testlog gives tests a logger that writes through t.Log.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/p2pcodec/internal/logging"
)

// Start returns a test-profile logger bound to t and logs the test start.
func Start(t testing.TB) zerolog.Logger {
	t.Helper()
	cfg := logging.DefaultConfig(logging.ProfileTest)
	logging.ApplyEnv(&cfg)
	cfg.Output = zerolog.NewTestWriter(t)
	cfg.NoColor = true
	logger := logging.New(cfg).With().Str("test", t.Name()).Logger()
	logger.Debug().Msg("start")
	return logger
}
