// Package logmodule wires a *slog.Logger through diwire using the value
// provider strategy: the logger is built once, up front, and handed to the
// container as a finished instance with no teardown of its own.
package logmodule

import (
	"log/slog"
	"os"

	"github.com/diwire/diwire"
)

// Format selects the handler logmodule builds its *slog.Logger with.
type Format int

const (
	// FormatText writes human-readable lines (the default).
	FormatText Format = iota
	// FormatJSON writes structured JSON lines.
	FormatJSON
)

// New builds a *slog.Logger in the requested format, writing to os.Stdout.
func New(format Format) *slog.Logger {
	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(os.Stdout, nil)
	default:
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}

// Module hands a ready-made *slog.Logger to the container by value -- there
// is nothing to initialize and nothing to tear down.
type Module struct {
	Logger *slog.Logger
}

// NewModule returns a Module built in the given format.
func NewModule(format Format) Module {
	return Module{Logger: New(format)}
}

var _ diwire.Module = Module{}
