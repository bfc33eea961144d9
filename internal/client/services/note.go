package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/wenotes/internal/client/api"
)

// NoteService defines the note operations of the CLI.
type NoteService interface {
	List(ctx context.Context) ([]Note, error)
	Search(ctx context.Context, title string) ([]Note, error)
	Create(ctx context.Context, title, content string, imageURL *string) (*Note, error)
	Get(ctx context.Context, id int64) (*Note, error)
	Update(ctx context.Context, id int64, title, content, imageURL *string) (*Note, error)
	Delete(ctx context.Context, id int64) error
	TogglePin(ctx context.Context, id int64) (*Note, error)
	Duplicate(ctx context.Context, id int64) (*Note, error)
	Share(ctx context.Context, id int64) (*Note, error)
	GetShared(ctx context.Context, token string) (*Note, error)
	UploadImage(ctx context.Context, data []byte, contentType string) (string, error)
}

type noteService struct {
	client *api.Client
}

// NewNoteService constructs a NoteService bound to the given API client.
func NewNoteService(client *api.Client) NoteService {
	return &noteService{client: client}
}

func (s *noteService) List(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := s.client.Do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *noteService) Search(ctx context.Context, title string) ([]Note, error) {
	var notes []Note
	path := "/notes?title=" + url.QueryEscape(title)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

type noteCreateRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

func (s *noteService) Create(ctx context.Context, title, content string, imageURL *string) (*Note, error) {
	var note Note
	req := noteCreateRequest{Title: title, Content: content, ImageURL: imageURL}
	if err := s.client.Do(ctx, http.MethodPost, "/notes", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *noteService) Get(ctx context.Context, id int64) (*Note, error) {
	var note Note
	if err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/notes/%d", id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

type noteUpdateRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

func (s *noteService) Update(ctx context.Context, id int64, title, content, imageURL *string) (*Note, error) {
	var note Note
	req := noteUpdateRequest{Title: title, Content: content, ImageURL: imageURL}
	if err := s.client.Do(ctx, http.MethodPut, fmt.Sprintf("/notes/%d", id), req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *noteService) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), nil, nil)
}

func (s *noteService) TogglePin(ctx context.Context, id int64) (*Note, error) {
	var note Note
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf("/notes/%d/pin", id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *noteService) Duplicate(ctx context.Context, id int64) (*Note, error) {
	var note Note
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf("/notes/%d/duplicate", id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *noteService) Share(ctx context.Context, id int64) (*Note, error) {
	var note Note
	if err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf("/notes/%d/share", id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *noteService) GetShared(ctx context.Context, token string) (*Note, error) {
	var note Note
	if err := s.client.Do(ctx, http.MethodGet, "/notes/shared/"+url.PathEscape(token), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

type uploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// UploadImage obtains a presigned PUT URL, uploads the bytes directly to
// object storage, and returns the storage key to store on a note.
func (s *noteService) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	var resp uploadResponse
	if err := s.client.Do(ctx, http.MethodPost, "/notes/uploads", nil, &resp); err != nil {
		return "", err
	}
	if err := s.client.UploadTo(ctx, resp.UploadURL, data, contentType); err != nil {
		return "", err
	}
	return resp.Key, nil
}
