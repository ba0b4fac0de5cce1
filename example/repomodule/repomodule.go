// Package repomodule demonstrates autowiring a service from two other
// modules' services: UserRepo's fields are filled in from whichever
// Database and *slog.Logger the container already published, regardless of
// which module contributed them.
package repomodule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diwire/diwire"
	"github.com/diwire/diwire/example/dbmodule"
)

// User is the row shape repomodule.UserRepo reads.
type User struct {
	ID   int64
	Name string
}

// UserRepo has no Init method, so diwire's auto resolution autowires its
// fields: DB and Log are filled from whatever the container has published
// for those types, leaving any field with no match at its zero value.
type UserRepo struct {
	DB  *dbmodule.Database
	Log *slog.Logger
}

// FindByID queries a user and logs the attempt.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	r.Log.Info("repomodule: lookup", "id", id)
	row := r.DB.Conn().QueryRowContext(ctx, "SELECT id, name FROM users WHERE id = $1", id)
	var u User
	if err := row.Scan(&u.ID, &u.Name); err != nil {
		return nil, fmt.Errorf("repomodule: find user %d: %w", id, err)
	}
	return &u, nil
}

// Module declares UserRepo with no default, so it is left to autowiring.
type Module struct {
	UserRepo *UserRepo
}

var _ diwire.Module = Module{}
