package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/wenotes/internal/server/models"
	"github.com/dmitrijs2005/wenotes/internal/server/services"
)

// NoteHandler serves the note CRUD and the pin/duplicate/share operations.
// Every per-note route resolves through the service's ownership guard, so a
// foreign id is indistinguishable from a missing one.
type NoteHandler struct {
	notes *services.NoteService
}

// NewNoteHandler constructs a NoteHandler.
func NewNoteHandler(notes *services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type noteCreateRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type noteUpdateRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

func (h *NoteHandler) caller(r *http.Request) (int64, models.Role) {
	claims := callerFromContext(r.Context())
	return claims.UserID, models.Role(claims.Role)
}

func (h *NoteHandler) noteID(r *http.Request) (int64, error) {
	return parseID(chi.URLParam(r, "id"))
}

// List returns the caller's notes, pinned first. A title query parameter
// narrows the result.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.caller(r)

	var (
		notes []*models.Note
		err   error
	)
	if q := r.URL.Query().Get("title"); q != "" {
		notes, err = h.notes.SearchNotes(r.Context(), userID, q)
	} else {
		notes, err = h.notes.ListNotes(r.Context(), userID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toNotePayloads(notes))
}

// Create adds a note. 201 on success.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, role := h.caller(r)

	var req noteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validateTitle(req.Title); err != nil {
		writeError(w, err)
		return
	}
	if err := validateContent(req.Content); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.notes.CreateNote(r.Context(), userID, role, services.NoteCreateInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toNotePayload(created))
}

// Get returns a single owned note.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.caller(r)
	id, err := h.noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.GetNote(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toNotePayload(note))
}

// Update applies partial changes to an owned note.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, role := h.caller(r)
	id, err := h.noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req noteUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Content != nil {
		if err := validateContent(*req.Content); err != nil {
			writeError(w, err)
			return
		}
	}

	updated, err := h.notes.UpdateNote(r.Context(), userID, role, id, services.NoteUpdateInput{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toNotePayload(updated))
}

// Delete removes an owned note. 204 on success.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.caller(r)
	id, err := h.noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notes.DeleteNote(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TogglePin flips the pinned flag.
func (h *NoteHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.caller(r)
	id, err := h.noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.TogglePin(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toNotePayload(note))
}

// Duplicate copies an owned note. 201; the free ceiling applies.
func (h *NoteHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	userID, role := h.caller(r)
	id, err := h.noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.DuplicateNote(r.Context(), userID, role, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, toNotePayload(note))
}

// Share marks a note shared and returns its public token.
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.caller(r)
	id, err := h.noteID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	note, err := h.notes.ShareNote(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toNotePayload(note))
}

// GetShared resolves a public share token. No authentication.
func (h *NoteHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeFailure(w, http.StatusNotFound, "not found")
		return
	}

	note, err := h.notes.GetSharedNote(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, toSharedNotePayload(note))
}
