package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/dbx"
	"github.com/dmitrijs2005/wenotes/internal/logging"
	"github.com/dmitrijs2005/wenotes/internal/server/config"
	"github.com/dmitrijs2005/wenotes/internal/server/models"
	notesrepo "github.com/dmitrijs2005/wenotes/internal/server/repositories/notes"
	refreshtokensrepo "github.com/dmitrijs2005/wenotes/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/wenotes/internal/server/repositories/users"
)

// --- in-memory fakes ---
//
// The fakes are stateful so lifecycle properties (single-use rotation,
// idempotent revoke-all) are exercised against real state transitions rather
// than canned return values.

type memUsersRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{nextID: 1, byID: map[int64]*models.User{}}
}

func (r *memUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.nextID++
	r.byID[u.ID] = &u
	out := u
	return &out, nil
}

func (r *memUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) Update(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	u := *user
	u.UpdatedAt = time.Now()
	r.byID[u.ID] = &u
	out := u
	return &out, nil
}

func (r *memUsersRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

type memTokensRepo struct {
	mu      sync.Mutex
	byToken map[string]*models.RefreshToken
	creates int
}

func newMemTokensRepo() *memTokensRepo {
	return &memTokensRepo{byToken: map[string]*models.RefreshToken{}}
}

func (r *memTokensRepo) Create(_ context.Context, userID int64, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	r.byToken[token] = &models.RefreshToken{
		ID:        int64(r.creates),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(validity),
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *memTokensRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byToken[token]; ok {
		out := *t
		return &out, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memTokensRepo) Revoke(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byToken[token]
	if !ok || t.RevokedAt != nil {
		return false, nil
	}
	now := time.Now()
	t.RevokedAt = &now
	return true, nil
}

func (r *memTokensRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, t := range r.byToken {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *memTokensRepo) activeCount(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.byToken {
		if t.UserID == userID && t.Active(time.Now()) {
			n++
		}
	}
	return n
}

func (r *memTokensRepo) expire(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byToken[token]; ok {
		t.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

type memNotesRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Note
}

func newMemNotesRepo() *memNotesRepo {
	return &memNotesRepo{nextID: 1, byID: map[int64]*models.Note{}}
}

func (r *memNotesRepo) Create(_ context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := *note
	n.ID = r.nextID
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	r.nextID++
	r.byID[n.ID] = &n
	out := n
	return &out, nil
}

func (r *memNotesRepo) GetByID(_ context.Context, id int64) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.byID[id]; ok {
		out := *n
		return &out, nil
	}
	return nil, common.ErrorNotFound
}

func (r *memNotesRepo) ListByUser(_ context.Context, userID int64) ([]*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Note
	for _, n := range r.byID {
		if n.UserID == userID {
			out := *n
			result = append(result, &out)
		}
	}
	return result, nil
}

func (r *memNotesRepo) SearchByTitle(ctx context.Context, userID int64, title string) ([]*models.Note, error) {
	all, _ := r.ListByUser(ctx, userID)
	var result []*models.Note
	for _, n := range all {
		if title == "" || n.Title == title {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *memNotesRepo) CountByUser(_ context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, note := range r.byID {
		if note.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memNotesRepo) Update(_ context.Context, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[note.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	n := *note
	n.UpdatedAt = time.Now()
	r.byID[n.ID] = &n
	out := n
	return &out, nil
}

func (r *memNotesRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memNotesRepo) GetShared(_ context.Context, token string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.byID {
		if n.Shared && n.SharedToken != nil && *n.SharedToken == token {
			out := *n
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memNotesRepo) DeleteAllForUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, n := range r.byID {
		if n.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

// fakeRepoManager hands out the same fakes regardless of the DBTX, which is
// enough for service-level tests: transactional scoping is the real
// manager's concern.
type fakeRepoManager struct {
	users  *memUsersRepo
	tokens *memTokensRepo
	notes  *memNotesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:  newMemUsersRepo(),
		tokens: newMemTokensRepo(),
		notes:  newMemNotesRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return m.users }

func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.tokens }

func (m *fakeRepoManager) Notes(dbx.DBTX) notesrepo.Repository { return m.notes }

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		BcryptCost:                   4, // keep hashing fast in tests
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}
