package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkrasnovs/notekeeper/internal/dbx"
	"github.com/dkrasnovs/notekeeper/internal/server/repositories/attachments"
	"github.com/dkrasnovs/notekeeper/internal/server/repositories/notes"
	"github.com/dkrasnovs/notekeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, which
// lets services run several repositories inside one transaction by handing
// them the same tx handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}
