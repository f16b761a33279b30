package domain

import (
	"time"

	"github.com/google/uuid"
)

// PostID is a value object for blog post identity.
type PostID struct{ uuid.UUID }

// NewPostID creates a new PostID from uuid.
func NewPostID(id uuid.UUID) PostID { return PostID{UUID: id} }

// String returns the canonical string form.
func (p PostID) String() string { return p.UUID.String() }

// Post is a blog entry owned by a user. ImageURL points at externally hosted
// media; the server never stores image bytes.
type Post struct {
	ID        PostID
	AuthorID  UserID
	Title     string
	Body      string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
