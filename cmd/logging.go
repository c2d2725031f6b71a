package cmd

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
)

// setupLogging configures the global zerolog logger from the NEO_LOG setting.
// Anything other than "debug" keeps the default info level.
func setupLogging(ctx context.Context, store *ConfigStore) error {
	level, err := store.Resolve(ctx, KeyLogLevel, ResolveOpts{Default: "info"})
	if err != nil {
		return err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw).Level(zerolog.InfoLevel)
	if level == "debug" {
		zerologlog.Logger = zerologlog.Logger.Level(zerolog.DebugLevel)
	}
	return nil
}
