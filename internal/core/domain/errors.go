package domain

import "errors"

var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("domain: not found")

	// ErrInvalidSnapshot indicates a weather observation is missing required
	// fields; the caller must supply them rather than have values guessed.
	ErrInvalidSnapshot = errors.New("domain: invalid weather snapshot")

	// ErrCredentialExpired is the 401-equivalent signal from an external
	// client. The service refreshes the credential once and retries once.
	ErrCredentialExpired = errors.New("domain: credential expired")

	// ErrSyncUnavailable marks a failed playlist lookup, creation, or append.
	// Ranking still succeeded when this is reported.
	ErrSyncUnavailable = errors.New("domain: playlist sync unavailable")

	// ErrPoolUnreachable marks a failed candidate search; ranking could not
	// run at all.
	ErrPoolUnreachable = errors.New("domain: candidate pool unreachable")
)
