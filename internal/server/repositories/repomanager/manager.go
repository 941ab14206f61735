// Package repomanager vends repository implementations bound to a database
// handle, plus the schema migration hook. Services hold a manager and a
// *sql.DB instead of concrete repositories so per-call handles can be a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/windhans/reels/internal/dbx"
	"github.com/windhans/reels/internal/server/repositories/comments"
	"github.com/windhans/reels/internal/server/repositories/likes"
	"github.com/windhans/reels/internal/server/repositories/reels"
	"github.com/windhans/reels/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Reels(db dbx.DBTX) reels.Repository
	Likes(db dbx.DBTX) likes.Repository
	Comments(db dbx.DBTX) comments.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
