// Package testutil collects small fixture module and service types shared
// across diwire's own _test.go files, the way the container library keeps
// its fixtures in one internal/testutil package rather than redefining them
// per test file.
package testutil

import "fmt"

// Counter is a plain autowirable struct with no Init method: a field left
// at Auto resolves it by autowiring its own (zero) fields.
type Counter struct {
	Value int
}

// Greeter has a pointer-receiver Init method, making it auto-resolve to the
// initializer strategy.
type Greeter struct {
	Prefix string
}

// Init sets Prefix if it wasn't already given a literal default.
func (g *Greeter) Init() error {
	if g.Prefix == "" {
		g.Prefix = "hello"
	}
	return nil
}

// Greet uses the configured prefix.
func (g *Greeter) Greet(name string) string {
	return fmt.Sprintf("%s, %s", g.Prefix, name)
}

// FailingService's Init always errors, for exercising build-failure unwind.
type FailingService struct{}

// ErrInitFailed is returned by FailingService.Init.
var ErrInitFailed = fmt.Errorf("testutil: init failed")

// Init always fails.
func (f *FailingService) Init() error {
	return ErrInitFailed
}

// Closer tracks whether its Deinit ran, for teardown-order assertions.
type Closer struct {
	Name   string
	Closed *[]string
}

// Init is a no-op; Closer exists to exercise Deinit.
func (c *Closer) Init() error { return nil }

// Deinit records its own name into the shared Closed slice.
func (c *Closer) Deinit() error {
	*c.Closed = append(*c.Closed, c.Name)
	return nil
}

// FirstCloser and SecondCloser are Closer's shape duplicated under distinct
// names: a module can only contribute one Dep per base type, so pairing two
// Closers in a single TeardownModule needs two separate types rather than
// two same-typed fields.
type FirstCloser struct {
	Name   string
	Closed *[]string
}

// Init is a no-op.
func (c *FirstCloser) Init() error { return nil }

// Deinit records its own name into the shared Closed slice.
func (c *FirstCloser) Deinit() error {
	*c.Closed = append(*c.Closed, c.Name)
	return nil
}

// SecondCloser is FirstCloser's counterpart, so TeardownModule can pair two
// independently-typed Closers in one module.
type SecondCloser struct {
	Name   string
	Closed *[]string
}

// Init is a no-op.
func (c *SecondCloser) Init() error { return nil }

// Deinit records its own name into the shared Closed slice.
func (c *SecondCloser) Deinit() error {
	*c.Closed = append(*c.Closed, c.Name)
	return nil
}

// FailingCloser's Deinit always errors, to exercise the swallow-and-log path
// during teardown.
type FailingCloser struct{}

// Init is a no-op.
func (c *FailingCloser) Init() error { return nil }

// Deinit always fails.
func (c *FailingCloser) Deinit() error {
	return fmt.Errorf("testutil: deinit failed")
}

// Repository depends on Database and Logger through autowiring.
type Repository struct {
	DB  *Database
	Log *Logger
}

// Database is supplied as a literal value in the fixtures (RepoModule's DB
// field) rather than auto-resolved, since it has no meaningful zero-value
// default.
type Database struct {
	DSN    string
	Closed *[]string
}

// Deinit records that the database was closed.
func (d *Database) Deinit() error {
	if d.Closed != nil {
		*d.Closed = append(*d.Closed, "database")
	}
	return nil
}

// Logger is a minimal stand-in, usually registered with Value.
type Logger struct {
	Lines *[]string
}

// Log appends a line.
func (l *Logger) Log(msg string) {
	if l.Lines != nil {
		*l.Lines = append(*l.Lines, msg)
	}
}

// Vtable is the intrusive sub-record convention: a service exposing a fixed
// field literally named Interface so other services can depend on a stable
// pointer to it without depending on the whole owner.
type Vtable struct {
	Owner string
}

// WithVtable owns an Interface sub-field, auto field_ref eligible.
type WithVtable struct {
	Name      string
	Interface Vtable
}

// Init seeds the Interface sub-field from the owner's own name.
func (w *WithVtable) Init() error {
	w.Interface.Owner = w.Name
	return nil
}
