package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. Unknown email and wrong
// password deliberately share ErrInvalidCredentials so login responses cannot
// be used to enumerate accounts; a wrong passphrase is distinguishable.
var (
	ErrReservedEmail      = errors.New("this email address is reserved")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPassphrase  = errors.New("invalid passphrase")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrForbidden          = errors.New("not allowed to modify this post")
	ErrAccountLocked      = errors.New("account temporarily locked")
)
