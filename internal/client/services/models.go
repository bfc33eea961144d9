// Package services contains application services for the WeNotes client:
// typed operations over the API client for authentication, notes, and the
// user profile.
package services

import "time"

// User is the client-side view of an account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Note is the client-side view of a note.
type Note struct {
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

// IsPremium reports whether the account may use premium features.
func (u *User) IsPremium() bool {
	return u.Role == "premium"
}
