package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingLevels(t *testing.T) {
	defer func() { zerologlog.Logger = zerologlog.Logger.Level(zerolog.InfoLevel) }()

	store := testStore(t, map[string]string{KeyLogLevel: "debug"})
	require.NoError(t, setupLogging(context.Background(), store))
	assert.Equal(t, zerolog.DebugLevel, zerologlog.Logger.GetLevel())

	store = testStore(t, nil)
	require.NoError(t, setupLogging(context.Background(), store))
	assert.Equal(t, zerolog.InfoLevel, zerologlog.Logger.GetLevel())
}

// Subcommands must configure logging too, not just the root run.
func TestSubcommandConfiguresLogging(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(KeyLogLevel, "debug")
	defer func() { zerologlog.Logger = zerologlog.Logger.Level(zerolog.InfoLevel) }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"info"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, zerologlog.Logger.GetLevel())
	assert.Contains(t, out.String(), "log level:   debug")
}
