package store

import "errors"

// Sentinel errors returned by the repository layer. Handlers match these
// with errors.Is and map them to status codes or redirect reasons.
var (
	ErrNotFound       = errors.New("record not found")
	ErrForbidden      = errors.New("not the owner of this record")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrAuthFailed     = errors.New("invalid email or password")
)
