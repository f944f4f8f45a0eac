package job

import (
	"errors"
	"math"
	"time"
)

var (
	ErrInvalidType        = errors.New("invalid job type")
	ErrInvalidStatus      = errors.New("invalid job status")
	ErrInvalidPayload     = errors.New("job payload must be a JSON object")
	ErrInvalidMaxAttempts = errors.New("max attempts out of range")
	ErrInvalidTransition  = errors.New("invalid job status transition")
	ErrLeaseMismatch      = errors.New("job is not held by this lease")
	ErrDedupKeyTooLong    = errors.New("dedup key too long")
	ErrInvalidPriority    = errors.New("priority out of range")
)

const (
	DefaultMaxAttempts = 3
	// Keeps 2^attempts seconds well inside time.Duration.
	MaxAttemptsLimit = 25
	MaxDedupKeyLen   = 200
	// jobs.priority is a 32-bit INTEGER.
	MinPriority = math.MinInt32
	MaxPriority = math.MaxInt32
)

// Backoff is the delay applied after the attempts-th failure.
func Backoff(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	if attempts > MaxAttemptsLimit {
		attempts = MaxAttemptsLimit
	}
	return time.Duration(1<<attempts) * time.Second
}
