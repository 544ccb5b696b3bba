package services

import "errors"

// Error taxonomy. Controllers map these with errors.Is; services wrap the
// underlying cause with fmt.Errorf("%w: ...", Err...) so the category
// survives while detail is preserved.
//
// validation / conflict / credentials are permanent — the same request will
// fail the same way. upstream is transient and safe for a client to retry.
var (
	ErrValidation  = errors.New("validation_failed")
	ErrNotFound    = errors.New("not_found")
	ErrConflict    = errors.New("dates_conflict")
	ErrCredentials = errors.New("invalid_credentials")
	ErrResetToken  = errors.New("reset_token_invalid")
	ErrUpstream    = errors.New("upstream_failed")
)
