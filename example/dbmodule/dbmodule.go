// Package dbmodule wires a *sql.DB-backed service through diwire using the
// initializer provider strategy, and closes it through a Deinit method.
package dbmodule

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/diwire/diwire"
)

// Config carries the Postgres connection string the module's Database
// connects to.
type Config struct {
	DSN string
}

// Database wraps a pooled *sql.DB, opened through Init rather than at
// construction, so diwire's auto resolution picks up the initializer
// strategy with no Configure override needed.
type Database struct {
	DSN string
	db  *sql.DB
}

// Init opens the pool against DSN. Resolved automatically since Database has
// a pointer-receiver Init(...) error method.
func (d *Database) Init(cfg Config) error {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return fmt.Errorf("dbmodule: open: %w", err)
	}
	d.db = db
	return nil
}

// Deinit closes the pool. It takes no parameters beyond the receiver, and
// runs during teardown before Config (Init's only parameter) would be torn
// down -- Config has no Deinit, so nothing runs for it.
func (d *Database) Deinit() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Conn exposes the underlying pool to callers that need to run a query.
func (d *Database) Conn() *sql.DB { return d.db }

// Module is the diwire module aggregate: Config supplies the DSN literal,
// Database is resolved through its Init method.
type Module struct {
	Config   Config
	Database *Database
}

// New returns a Module configured to connect to dsn.
func New(dsn string) Module {
	return Module{Config: Config{DSN: dsn}}
}

var _ diwire.Module = Module{}
