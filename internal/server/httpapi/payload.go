package httpapi

import (
	"time"

	"github.com/dmitrijs2005/wenotes/internal/server/models"
)

// userPayload is the public profile view. The password hash never leaves the
// service layer.
type userPayload struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserPayload(u *models.User) userPayload {
	return userPayload{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type notePayload struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Pinned      bool      `json:"pinned"`
	Shared      bool      `json:"shared"`
	SharedToken *string   `json:"sharedToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toNotePayload(n *models.Note) notePayload {
	return notePayload{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		ImageURL:    n.ImageURL,
		Pinned:      n.Pinned,
		Shared:      n.Shared,
		SharedToken: n.SharedToken,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// toSharedNotePayload is the public view of a shared note: no share token
// echo, no owner id.
func toSharedNotePayload(n *models.Note) notePayload {
	return notePayload{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		ImageURL:  n.ImageURL,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNotePayloads(notes []*models.Note) []notePayload {
	out := make([]notePayload, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNotePayload(n))
	}
	return out
}

// authPayload accompanies login/register/refresh responses. The refresh token
// itself travels only in the httpOnly cookie.
type authPayload struct {
	User        userPayload `json:"user"`
	AccessToken string      `json:"accessToken"`
}
