package headless

import (
	"log/slog"

	"github.com/gogpu/headless/surface"
)

// SetLogger configures the logger shared by the host and the surface
// provider. The default logger discards everything; pass nil to restore it.
//
// Levels:
//   - [slog.LevelDebug]: resizes, surface recreation, teardown
//   - [slog.LevelInfo]: adapter selected, surface and host created
//   - [slog.LevelWarn]: defaulted geometry queries, backend fallbacks
//
// Example:
//
//	headless.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	surface.SetLogger(l)
}

// Logger returns the current logger. It is never nil.
func Logger() *slog.Logger {
	return surface.Logger()
}
