package notes

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/server/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func noteRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "content", "image_url",
		"pinned", "shared", "shared_token", "created_at", "updated_at",
	}).
		AddRow(int64(2), int64(7), "pinned note", "c", nil, true, false, nil, now, now).
		AddRow(int64(1), int64(7), "plain note", "c", nil, false, false, nil, now, now)
}

func TestCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notes")).
		WithArgs(int64(7), "t", "c", nil, false, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	note, err := repo.Create(context.Background(), &models.Note{UserID: 7, Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), note.ID)
}

func TestListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes")).
		WithArgs(int64(7)).
		WillReturnRows(noteRows(time.Now()))

	notes, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.True(t, notes[0].Pinned, "pinned notes sort first")
}

func TestSearchByTitle(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("title ILIKE")).
		WithArgs(int64(7), "note").
		WillReturnRows(noteRows(time.Now()))

	notes, err := repo.SearchByTitle(context.Background(), 7, "note")
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestCountByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM notes")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetShared(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresRepository(db)

	now := time.Now()
	token := "share-token"
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "content", "image_url",
		"pinned", "shared", "shared_token", "created_at", "updated_at",
	}).AddRow(int64(1), int64(7), "t", "c", nil, false, true, token, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE shared AND shared_token")).
		WithArgs(token).
		WillReturnRows(rows)

	note, err := repo.GetShared(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, note.SharedToken)
	assert.Equal(t, token, *note.SharedToken)
}

func TestDeleteAllForUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notes")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, repo.DeleteAllForUser(context.Background(), 7))
}
