package domain

import "errors"

// Error kinds shared by all layers. Package level sentinels wrap one of
// them so callers can match either the specific error or its kind.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation error")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrExpired           = errors.New("expired")
)
