// Package repomanager groups repository construction behind one interface so
// services can obtain repositories bound either to the shared *sql.DB or to
// an in-flight transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wenotes/internal/dbx"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/users"
)

// RepositoryManager hands out repositories over the given DBTX. Passing a
// *sql.Tx yields transaction-scoped repositories; this is how refresh-token
// rotation keeps its revoke+insert atomic.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
}
