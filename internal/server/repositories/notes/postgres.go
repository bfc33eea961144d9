package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/dbx"
	"github.com/dmitrijs2005/wenotes/internal/server/models"
)

const noteColumns = "id, user_id, title, content, image_url, pinned, shared, shared_token, created_at, updated_at"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `
		INSERT INTO notes (user_id, title, content, image_url, pinned, shared, shared_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.UserID, note.Title, note.Content, note.ImageURL, note.Pinned, note.Shared, note.SharedToken).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	return scanNote(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1
		ORDER BY pinned DESC, updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *PostgresRepository) SearchByTitle(ctx context.Context, userID int64, title string) ([]*models.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND title ILIKE '%' || $2 || '%'
		ORDER BY pinned DESC, updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, title)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT count(*) FROM notes WHERE user_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `
		UPDATE notes
		SET title = $2, content = $3, image_url = $4, pinned = $5, shared = $6, shared_token = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.Title, note.Content, note.ImageURL, note.Pinned, note.Shared, note.SharedToken).
		Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetShared(ctx context.Context, token string) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE shared AND shared_token = $1`
	return scanNote(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	query := `DELETE FROM notes WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func scanNote(row *sql.Row) (*models.Note, error) {
	note := &models.Note{}
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.ImageURL,
		&note.Pinned, &note.Shared, &note.SharedToken, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return note, nil
}

func scanNotes(rows *sql.Rows) ([]*models.Note, error) {
	var result []*models.Note
	for rows.Next() {
		note := &models.Note{}
		err := rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.ImageURL,
			&note.Pinned, &note.Shared, &note.SharedToken, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, nil
}
