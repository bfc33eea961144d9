package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/wenotes/internal/common"
	"github.com/dmitrijs2005/wenotes/internal/server/config"
	"github.com/dmitrijs2005/wenotes/internal/server/models"
	"github.com/dmitrijs2005/wenotes/internal/server/repositories/repomanager"
)

// FreeNotesLimit caps the number of notes a standard-role user may own.
const FreeNotesLimit = 10

// EnsureOwnership returns the note only if it exists and belongs to callerID;
// otherwise nil. Callers must translate nil into the same not-found outcome
// for both cases so the existence of other users' notes is never leaked.
func EnsureOwnership(note *models.Note, callerID int64) *models.Note {
	if note == nil || note.ID == 0 {
		return nil
	}
	if note.UserID != callerID {
		return nil
	}
	return note
}

// NoteCreateInput carries the fields for a new note.
type NoteCreateInput struct {
	Title    string
	Content  string
	ImageURL *string
}

// NoteUpdateInput carries optional changes; nil fields keep current values.
type NoteUpdateInput struct {
	Title    *string
	Content  *string
	ImageURL *string
}

// NoteService implements note CRUD plus pin/duplicate/share, with every
// per-note operation guarded by EnsureOwnership and the role-based feature
// gates (free note ceiling, premium-only images) applied from the caller's
// role claim.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, _ *config.Config) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// CreateNote adds a note for userID. Standard users are subject to the free
// note ceiling; image URLs are persisted only for premium users.
func (s *NoteService) CreateNote(ctx context.Context, userID int64, role models.Role, input NoteCreateInput) (*models.Note, error) {
	repo := s.repomanager.Notes(s.db)

	if role != models.RolePremium {
		if input.ImageURL != nil {
			return nil, common.ErrPremiumRequired
		}
		if err := s.checkNoteLimit(ctx, userID); err != nil {
			return nil, err
		}
	}

	note := &models.Note{
		UserID:   userID,
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		ImageURL: input.ImageURL,
	}

	created, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return created, nil
}

// ListNotes returns all notes owned by userID, pinned first.
func (s *NoteService) ListNotes(ctx context.Context, userID int64) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListByUser(ctx, userID)
}

// SearchNotes returns the caller's notes whose title contains the query.
func (s *NoteService) SearchNotes(ctx context.Context, userID int64, title string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).SearchByTitle(ctx, userID, title)
}

// GetNote returns the note only when it belongs to userID.
func (s *NoteService) GetNote(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	owned, err := s.loadOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	return owned, nil
}

// UpdateNote applies the non-nil fields of input to an owned note. Image
// changes are silently ignored for non-premium callers, matching create.
func (s *NoteService) UpdateNote(ctx context.Context, userID int64, role models.Role, noteID int64, input NoteUpdateInput) (*models.Note, error) {
	owned, err := s.loadOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		owned.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		owned.Content = *input.Content
	}
	if role == models.RolePremium && input.ImageURL != nil {
		owned.ImageURL = input.ImageURL
	}

	return s.update(ctx, owned)
}

// DeleteNote removes an owned note.
func (s *NoteService) DeleteNote(ctx context.Context, userID, noteID int64) error {
	owned, err := s.loadOwned(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if err := s.repomanager.Notes(s.db).Delete(ctx, owned.ID); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	return nil
}

// TogglePin flips the pinned flag of an owned note.
func (s *NoteService) TogglePin(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	owned, err := s.loadOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	owned.Pinned = !owned.Pinned
	return s.update(ctx, owned)
}

// DuplicateNote copies an owned note. The copy is unpinned, unshared, and
// counts against the free ceiling like any created note.
func (s *NoteService) DuplicateNote(ctx context.Context, userID int64, role models.Role, noteID int64) (*models.Note, error) {
	owned, err := s.loadOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if role != models.RolePremium {
		if err := s.checkNoteLimit(ctx, userID); err != nil {
			return nil, err
		}
	}

	copyNote := &models.Note{
		UserID:   userID,
		Title:    owned.Title,
		Content:  owned.Content,
		ImageURL: owned.ImageURL,
	}

	created, err := s.repomanager.Notes(s.db).Create(ctx, copyNote)
	if err != nil {
		return nil, fmt.Errorf("error duplicating note: %w", err)
	}
	return created, nil
}

// ShareNote marks an owned note shared and mints its public token. Sharing an
// already shared note mints a fresh token, invalidating previously handed-out
// links.
func (s *NoteService) ShareNote(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	owned, err := s.loadOwned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	owned.Shared = true
	owned.SharedToken = &token

	return s.update(ctx, owned)
}

// GetSharedNote resolves a public share token. No authentication involved.
func (s *NoteService) GetSharedNote(ctx context.Context, token string) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).GetShared(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return note, nil
}

// --- helpers below ---

// loadOwned loads a note by id and applies the ownership guard. Both a
// missing note and a foreign note come back as common.ErrorNotFound.
func (s *NoteService) loadOwned(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if owned := EnsureOwnership(note, userID); owned != nil {
		return owned, nil
	}
	return nil, common.ErrorNotFound
}

func (s *NoteService) checkNoteLimit(ctx context.Context, userID int64) error {
	count, err := s.repomanager.Notes(s.db).CountByUser(ctx, userID)
	if err != nil {
		return common.ErrorInternal
	}
	if count >= FreeNotesLimit {
		return common.ErrNoteLimitReached
	}
	return nil
}

func (s *NoteService) update(ctx context.Context, note *models.Note) (*models.Note, error) {
	updated, err := s.repomanager.Notes(s.db).Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return updated, nil
}
