package job

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job is a unit of deferred work. Status changes only through the
// transition methods below; each one keeps attempts ≤ maxAttempts and
// processedAt set exactly when the job is completed.
type Job struct {
	id             uuid.UUID
	jobType        Type
	payload        json.RawMessage
	status         Status
	priority       int
	attempts       int
	maxAttempts    int
	lastError      *string
	scheduledFor   time.Time
	processedAt    *time.Time
	claimedBy      *string
	leaseExpiresAt *time.Time
	dedupKey       *string
	createdAt      time.Time
	updatedAt      time.Time
}

type NewParams struct {
	Type     Type
	Payload  json.RawMessage
	Priority int
	// Zero means now.
	ScheduledFor time.Time
	// Zero means DefaultMaxAttempts.
	MaxAttempts int
	DedupKey    string
}

func New(p NewParams, now time.Time) (*Job, error) {
	if !p.Type.IsValid() {
		return nil, ErrInvalidType
	}
	if !isJSONObject(p.Payload) {
		return nil, ErrInvalidPayload
	}
	if p.Priority < MinPriority || p.Priority > MaxPriority {
		return nil, ErrInvalidPriority
	}

	maxAttempts := p.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if maxAttempts < 1 || maxAttempts > MaxAttemptsLimit {
		return nil, ErrInvalidMaxAttempts
	}

	scheduledFor := p.ScheduledFor
	if scheduledFor.IsZero() {
		scheduledFor = now
	}

	var dedupKey *string
	if key := strings.TrimSpace(p.DedupKey); key != "" {
		if len(key) > MaxDedupKeyLen {
			return nil, ErrDedupKeyTooLong
		}
		dedupKey = &key
	}

	payload := make(json.RawMessage, len(p.Payload))
	copy(payload, p.Payload)

	return &Job{
		id:           uuid.New(),
		jobType:      p.Type,
		payload:      payload,
		status:       StatusPending,
		priority:     p.Priority,
		maxAttempts:  maxAttempts,
		scheduledFor: scheduledFor.UTC(),
		dedupKey:     dedupKey,
		createdAt:    now.UTC(),
		updatedAt:    now.UTC(),
	}, nil
}

// Snapshot is the persisted shape of a Job.
type Snapshot struct {
	ID             uuid.UUID
	Type           Type
	Payload        json.RawMessage
	Status         Status
	Priority       int
	Attempts       int
	MaxAttempts    int
	Error          *string
	ScheduledFor   time.Time
	ProcessedAt    *time.Time
	ClaimedBy      *string
	LeaseExpiresAt *time.Time
	DedupKey       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reconstruct rebuilds a Job from storage without validation.
func Reconstruct(s Snapshot) *Job {
	return &Job{
		id:             s.ID,
		jobType:        s.Type,
		payload:        s.Payload,
		status:         s.Status,
		priority:       s.Priority,
		attempts:       s.Attempts,
		maxAttempts:    s.MaxAttempts,
		lastError:      s.Error,
		scheduledFor:   s.ScheduledFor,
		processedAt:    s.ProcessedAt,
		claimedBy:      s.ClaimedBy,
		leaseExpiresAt: s.LeaseExpiresAt,
		dedupKey:       s.DedupKey,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
	}
}

func (j *Job) Snapshot() Snapshot {
	return Snapshot{
		ID:             j.id,
		Type:           j.jobType,
		Payload:        j.payload,
		Status:         j.status,
		Priority:       j.priority,
		Attempts:       j.attempts,
		MaxAttempts:    j.maxAttempts,
		Error:          j.lastError,
		ScheduledFor:   j.scheduledFor,
		ProcessedAt:    j.processedAt,
		ClaimedBy:      j.claimedBy,
		LeaseExpiresAt: j.leaseExpiresAt,
		DedupKey:       j.dedupKey,
		CreatedAt:      j.createdAt,
		UpdatedAt:      j.updatedAt,
	}
}

func (j *Job) ID() uuid.UUID              { return j.id }
func (j *Job) Type() Type                 { return j.jobType }
func (j *Job) Payload() json.RawMessage   { return j.payload }
func (j *Job) Status() Status             { return j.status }
func (j *Job) Priority() int              { return j.priority }
func (j *Job) Attempts() int              { return j.attempts }
func (j *Job) MaxAttempts() int           { return j.maxAttempts }
func (j *Job) Error() *string             { return j.lastError }
func (j *Job) ScheduledFor() time.Time    { return j.scheduledFor }
func (j *Job) ProcessedAt() *time.Time    { return j.processedAt }
func (j *Job) ClaimedBy() *string         { return j.claimedBy }
func (j *Job) LeaseExpiresAt() *time.Time { return j.leaseExpiresAt }
func (j *Job) DedupKey() *string          { return j.dedupKey }
func (j *Job) CreatedAt() time.Time       { return j.createdAt }
func (j *Job) UpdatedAt() time.Time       { return j.updatedAt }

// IsEligible reports pending ∧ scheduledFor ≤ now.
func (j *Job) IsEligible(now time.Time) bool {
	return j.status == StatusPending && !j.scheduledFor.After(now)
}

// HoldsLease reports whether token is the live claim on this job.
func (j *Job) HoldsLease(token string) bool {
	return j.status == StatusProcessing && j.claimedBy != nil && *j.claimedBy == token
}

func (j *Job) LeaseExpired(now time.Time) bool {
	return j.status == StatusProcessing && j.leaseExpiresAt != nil && !j.leaseExpiresAt.After(now)
}

// Claim moves an eligible job to processing under a lease.
func (j *Job) Claim(token string, leaseUntil, now time.Time) error {
	if !j.IsEligible(now) {
		return ErrInvalidTransition
	}
	j.status = StatusProcessing
	j.claimedBy = &token
	lease := leaseUntil.UTC()
	j.leaseExpiresAt = &lease
	j.touch(now)
	return nil
}

// Start moves a pending job to processing without a lease.
func (j *Job) Start(now time.Time) error {
	if j.status != StatusPending {
		return ErrInvalidTransition
	}
	j.status = StatusProcessing
	j.touch(now)
	return nil
}

func (j *Job) Complete(now time.Time) error {
	if j.status != StatusProcessing {
		return ErrInvalidTransition
	}
	done := now.UTC()
	j.status = StatusCompleted
	j.processedAt = &done
	j.releaseLease()
	j.touch(now)
	return nil
}

// RecordFailure counts a failed attempt. The job goes back to pending with
// exponential backoff, or to failed once maxAttempts is reached.
func (j *Job) RecordFailure(message string, now time.Time) (terminal bool, err error) {
	if j.status != StatusProcessing {
		return false, ErrInvalidTransition
	}
	j.attempts++
	j.lastError = &message
	j.releaseLease()
	j.touch(now)

	if j.attempts >= j.maxAttempts {
		j.attempts = j.maxAttempts
		j.status = StatusFailed
		return true, nil
	}
	j.status = StatusPending
	j.scheduledFor = now.UTC().Add(Backoff(j.attempts))
	return false, nil
}

// Terminate fails the job immediately, consuming all remaining attempts.
func (j *Job) Terminate(message string, now time.Time) error {
	if j.status != StatusProcessing {
		return ErrInvalidTransition
	}
	j.attempts = j.maxAttempts
	j.lastError = &message
	j.status = StatusFailed
	j.releaseLease()
	j.touch(now)
	return nil
}

func (j *Job) releaseLease() {
	j.claimedBy = nil
	j.leaseExpiresAt = nil
}

func (j *Job) touch(now time.Time) {
	j.updatedAt = now.UTC()
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}
