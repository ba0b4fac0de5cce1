package diwire

import (
	"log/slog"
	"reflect"
	"time"
)

// Options configures a BuildWithOptions call. The zero value is the same as
// what Build uses: no timeout, slog.Default() logging, overrides tolerated,
// mocks rejected.
type Options struct {
	// BuildTimeout bounds how long the execution pass (running the
	// scheduled ops) may run; planning is not timed. Zero means no timeout.
	// Initializers and factories may still block arbitrarily long on I/O;
	// this only bounds how long Build waits for them.
	BuildTimeout time.Duration

	// Logger receives the Warn-level line emitted when a deinit fails
	// during unwind: swallowed, logged, original error kept.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Strict turns an unused add_override/add_mock into a build error
	// instead of the default tolerant behavior.
	Strict bool

	// AllowMocks permits add_mock during this build. Intended for test
	// binaries only.
	AllowMocks bool

	// OnResolved and OnError, if set, are called after every Dep op
	// completes (or fails) during execution; hook ops do not trigger them
	// -- a per-op observability hook adapted
	// from the container library's per-resolve ResolverOptions callbacks.
	OnResolved func(t reflect.Type)
	OnError    func(t reflect.Type, err error)
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
