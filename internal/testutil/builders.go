package testutil

import "reflect"

// NewDatabase is a Factory-shaped constructor: it takes dsn and closed and
// returns (*Database, error), the common shape for registering Database
// explicitly instead of relying on autowiring its zero value.
func NewDatabase(dsn string, closed *[]string) (*Database, error) {
	return &Database{DSN: dsn, Closed: closed}, nil
}

// NewRepository mirrors Repository's fields, for tests that register it via
// Factory instead of Autowire.
func NewRepository(db *Database, log *Logger) (*Repository, error) {
	return &Repository{DB: db, Log: log}, nil
}

// TypeOf is a small convenience used by tests building Bundle calls directly
// against reflect.Type rather than through the generic Add[T] helpers.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
