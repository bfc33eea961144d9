package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/wenotes/internal/dbx"
	"github.com/dmitrijs2005/wenotes/internal/server/migrations"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/users"
)

// PostgresManager is the production RepositoryManager backed by PostgreSQL.
type PostgresManager struct{}

// NewPostgresManager constructs a PostgresManager.
func NewPostgresManager() *PostgresManager {
	return &PostgresManager{}
}

func (m *PostgresManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (m *PostgresManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewPostgresRepository(db)
}
