package handlers

// API error codes returned in the response envelope for stable client handling.
const (
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeInvalidPassphrase  = "invalid_passphrase"
	ErrCodeReservedEmail      = "reserved_email"
	ErrCodeEmailTaken         = "email_taken"
	ErrCodeAccountLocked      = "account_locked"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeForbidden          = "forbidden"
	ErrCodeInternal           = "internal_error"
)
