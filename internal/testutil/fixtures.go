package testutil

import "github.com/diwire/diwire"

// BasicModule exercises the three auto-resolution paths in one module: a
// literal default (Name), an autowired struct (Counter), and an
// initializer-resolved struct (Greeter).
type BasicModule struct {
	Name    string
	Counter Counter
	Greeter Greeter
}

// RepoModule exercises cross-field autowiring: Repo's fields are filled from
// DB and Log once both are ready.
type RepoModule struct {
	DB   *Database
	Log  *Logger
	Repo *Repository
}

// FailingModule always fails to build, for unwind and BuildError assertions.
type FailingModule struct {
	Bad FailingService
}

// TeardownModule pairs two Closers behind a shared log, so tests can assert
// Deinit runs in the reverse of the order the Closers became ready. First
// and Second are left at their zero value so each auto-resolves to its
// Init method (making it a container-constructed instance that actually
// participates in deinit); Configure then overrides that auto-detected
// no-op initializer with one that seeds Name and Closed.
type TeardownModule struct {
	Closed *[]string
	First  *FirstCloser
	Second *SecondCloser
}

// Configure seeds First and Second's Name/Closed fields through their
// initializer, since their zero-valued module fields carry no literal to
// autowire from.
func (m TeardownModule) Configure(b *diwire.Bundle) error {
	if err := diwire.AddOverride[FirstCloser](b, diwire.Initializer(func(c *FirstCloser) error {
		c.Name = "first"
		c.Closed = m.Closed
		return nil
	})); err != nil {
		return err
	}
	return diwire.AddOverride[SecondCloser](b, diwire.Initializer(func(c *SecondCloser) error {
		c.Name = "second"
		c.Closed = m.Closed
		return nil
	}))
}

// VtableModule exercises the "Interface" sub-field field_ref convention.
type VtableModule struct {
	Service WithVtable
}
