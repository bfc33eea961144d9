package models

import "time"

// Note belongs to exactly one user. ImageURL is only ever set for premium
// owners; SharedToken is non-nil once the note has been shared publicly.
type Note struct {
	ID          int64
	UserID      int64
	Title       string
	Content     string
	ImageURL    *string
	Pinned      bool
	Shared      bool
	SharedToken *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
