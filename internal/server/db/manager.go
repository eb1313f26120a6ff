// Package db wires the server repositories to a concrete database.
package db

import (
	"context"
	"database/sql"

	"github.com/datacleaner-ai/datacleaner/internal/server/repositories/images"
	"github.com/datacleaner-ai/datacleaner/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Images() images.Repository
}
