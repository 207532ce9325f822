// Package repomanager builds repositories over a shared DB handle so that
// services can run them against either the pool or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/everkeep/everkeep/internal/dbx"
	"github.com/everkeep/everkeep/internal/server/repositories/entries"
	"github.com/everkeep/everkeep/internal/server/repositories/refreshtokens"
	"github.com/everkeep/everkeep/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Entries(db dbx.DBTX) entries.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
