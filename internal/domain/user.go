package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservedAdminEmail denotes the privileged account and is excluded from
// self-registration.
const ReservedAdminEmail = "admin@zamanix.com"

// Roles assignable to a user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is a registered account. PasswordHash and PassphraseHash hold encoded
// Argon2id digests; the plaintext passphrase exists only in the registration
// response.
type User struct {
	ID             UserID
	Name           string
	Email          string
	Phone          string
	PasswordHash   string
	PassphraseHash string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
