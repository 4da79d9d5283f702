// Package db wires the PostgreSQL connection, the repositories, and the
// schema migrations into one manager consumed by the application setup.
package db

import (
	"context"
	"database/sql"

	"github.com/medvault/medvault/internal/server/patients"
	"github.com/medvault/medvault/internal/server/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Patients() patients.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
