package diwire

// Module marks a user-defined aggregate type whose exported fields each
// declare one service: the field's static type is the service type, and a
// non-zero literal value set on the field is used as that service's
// default. Any exported struct type satisfies Module; it need
// not implement any method.
//
// Example:
//
//	type AppModule struct {
//	    MaxRetries int
//	    DB         *Database
//	    Repo       *UserRepo
//	}
type Module any

// Configurer is the optional "configure(bundle)" hook.
// A module implementing Configure may add further dependencies, install
// overrides and mocks, register field refs, or add compile/init/deinit
// hooks before the dependency graph is resolved.
//
// Example:
//
//	func (m *AppModule) Configure(b *diwire.Bundle) error {
//	    diwire.Add[Config](b, diwire.Value(loadConfig()))
//	    b.AddInitHook(func(log *slog.Logger) error {
//	        log.Info("app module configured")
//	        return nil
//	    })
//	    return nil
//	}
type Configurer interface {
	Configure(b *Bundle) error
}
