package errs

import "errors"

// Error taxonomy shared by the queue core and its collaborators.
// Concrete errors are attached to one of these with Mark and classified with errors.Is.
var (
	// Malformed enqueue request; never reaches the store
	ErrValidation = errors.New("validation error")

	// Job or apply-handler target missing
	ErrNotFound = errors.New("not found")

	// Job not in the state the caller expected
	ErrState = errors.New("unexpected job state")

	// Transient store I/O failure, retryable
	ErrStore = errors.New("store error")

	// Per-job wall-clock budget exceeded
	ErrJobTimeout = errors.New("job timed out")

	// Terminal; the job moved to failed
	ErrExhaustedRetries = errors.New("job exhausted retries")

	// Duplicate unique key (username, email, dedup key)
	ErrConflict = errors.New("conflict")

	// Missing or rejected credentials
	ErrUnauthorized = errors.New("unauthorized")

	// Authenticated but not allowed
	ErrForbidden = errors.New("forbidden")
)
