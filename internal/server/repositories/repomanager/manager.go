// Package repomanager provides a factory over all server repositories so
// services can bind them to either a connection pool or a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkorotkov/clipstream/internal/dbx"
	"github.com/mkorotkov/clipstream/internal/server/repositories/interviews"
	"github.com/mkorotkov/clipstream/internal/server/repositories/meetings"
	"github.com/mkorotkov/clipstream/internal/server/repositories/projects"
	"github.com/mkorotkov/clipstream/internal/server/repositories/refreshtokens"
	"github.com/mkorotkov/clipstream/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Projects(db dbx.DBTX) projects.Repository
	Meetings(db dbx.DBTX) meetings.Repository
	Interviews(db dbx.DBTX) interviews.Repository
}
