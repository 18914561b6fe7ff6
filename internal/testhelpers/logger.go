// Package testhelpers holds small fixtures shared by tests across packages.
package testhelpers

import (
	"io"
	"log/slog"

	"github.com/myrjola/docket/internal/logging"
)

// NewLogger returns a debug-level logger writing to the given sink. Tests
// pass io.Discard unless they assert on log output.
func NewLogger(sink io.Writer) *slog.Logger {
	return slog.New(logging.NewContextHandler(slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}
