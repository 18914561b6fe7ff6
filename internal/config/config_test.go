package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myrjola/docket/internal/config"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(lookupFrom(nil))
	require.NoError(t, err)
	require.Equal(t, "cases", cfg.CasesDir)
	require.Empty(t, cfg.CaseID)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 10, cfg.SaveKeep)
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(lookupFrom(map[string]string{
		"DOCKET_CASES_DIR": "/var/lib/docket",
		"DOCKET_CASE":      "midnight-gala",
		"DOCKET_LOG_LEVEL": "debug",
		"DOCKET_SAVE_KEEP": "3",
	}))
	require.NoError(t, err)
	require.Equal(t, "/var/lib/docket", cfg.CasesDir)
	require.Equal(t, "midnight-gala", cfg.CaseID)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 3, cfg.SaveKeep)
}

func TestLoadRejectsMalformedKeep(t *testing.T) {
	t.Parallel()

	_, err := config.Load(lookupFrom(map[string]string{
		"DOCKET_SAVE_KEEP": "many",
	}))
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   string
		want    slog.Level
		wantErr error
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "info", level: "info", want: slog.LevelInfo},
		{name: "warn", level: "warn", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "unknown", level: "loud", wantErr: config.ErrUnknownLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			level, err := config.Config{LogLevel: tt.level}.SlogLevel()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, level)
		})
	}
}
