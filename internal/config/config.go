// Package config loads runtime settings from the environment.
package config

import (
	"log/slog"

	"github.com/myrjola/docket/internal/envstruct"
	"github.com/myrjola/docket/internal/errors"
)

var ErrUnknownLogLevel = errors.NewSentinel("unknown log level")

type Config struct {
	// CasesDir is the directory under which each case gets its own
	// subdirectory.
	CasesDir string `env:"DOCKET_CASES_DIR" envDefault:"cases"`
	// CaseID selects the case commands operate on when no --case flag is
	// given. Empty means no case is selected.
	CaseID string `env:"DOCKET_CASE" envDefault:""`
	// LogLevel is one of debug, info, warn, or error.
	LogLevel string `env:"DOCKET_LOG_LEVEL" envDefault:"info"`
	// SaveKeep is how many save artifacts cleanup retains per case.
	SaveKeep int `env:"DOCKET_SAVE_KEEP" envDefault:"10"`
}

func Load(lookupEnv func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return Config{}, errors.Wrap(err, "populate config")
	}

	return cfg, nil
}

// SlogLevel translates the configured level name for slog handlers.
func (c Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Wrap(ErrUnknownLogLevel, "parse log level",
			slog.String("log_level", c.LogLevel))
	}
}
