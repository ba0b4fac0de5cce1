// Package diwire builds a dependency graph once, at startup, and hands out
// fixed-address services for the rest of the process's life. There is no
// request scope and no per-call resolution: every service is placed exactly
// once in a single contiguous storage region and its pointer never moves
// until the container is closed.
//
// # Overview
//
// Group related services into a module -- an ordinary exported struct whose
// fields name the services it contributes -- and hand one or more modules to
// Build:
//
//	type AppModule struct {
//	    Cfg Config
//	    DB  *Database
//	    Log *slog.Logger
//	}
//
//	c, err := diwire.Build(AppModule{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	db, err := diwire.Get[*Database](c.Injector())
//
// A field left at its zero value is resolved automatically: a struct type
// with a pointer-receiver Init(...) error method is initialized through it,
// any other struct type is autowired from its own fields. A field already
// carrying a literal value is used as-is.
//
// # Providers
//
// A module can implement Configure to override a field's strategy
// explicitly instead of relying on auto-resolution (Add is for services no
// field declares; calling it for a declared field is a DuplicateServiceError):
//
//	func (m *AppModule) Configure(b *diwire.Bundle) error {
//	    return diwire.AddOverride[*Database](b, diwire.Factory(func(cfg Config) (*Database, error) {
//	        conn, err := sql.Open("postgres", cfg.DSN)
//	        return &Database{conn: conn}, err
//	    }))
//	}
//
// Value copies a ready-made instance in; Factory builds one from its return
// value; Initializer and UseInitMethod mutate an already-allocated instance
// in place; Autowire fills a struct's fields from the container; AddFieldRef
// exposes a field of an existing service as its own injectable pointer.
//
// # Overrides and mocks
//
// AddOverride replaces a service's provider without touching its place in
// the graph -- the last override registered before Build finishes wins.
// AddMock is the same, gated behind Options.AllowMocks so test-only
// substitutions can't leak into a production build by accident.
//
// # Hooks
//
// AddInitHook and AddDeinitHook register a plain function whose parameters
// are resolved the same way a Factory's are. An init hook runs once every
// parameter it asks for has been published, interleaved with the rest of the
// graph; a deinit hook runs during teardown, before the services it asks for
// are torn down.
//
// # Teardown
//
// Close runs the Deinit method, if it has one, of every service the
// container constructed (through a Factory, an Initializer or an Init
// method), in the reverse of the order its dependencies were satisfied in.
// Services supplied by Value, filled by Autowire or exposed through
// AddFieldRef are not torn down. A failure that occurs during
// Build unwinds everything that had already started before returning the
// original error; the half-built Container is discarded, never returned to
// the caller.
//
// # Concurrency
//
// Build is not safe to call concurrently with itself on the same module
// values, but a Container's Injector may be used from any number of
// goroutines once Build has returned successfully.
package diwire
