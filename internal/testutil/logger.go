package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger whose records go nowhere, keeping test
// output readable.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
