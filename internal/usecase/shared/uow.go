package shared

import (
	"context"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/movie"
	"gin-jobqueue/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// Every write made through tx is discarded when fn returns an error or ctx ends.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Jobs() JobRepository
	Users() UserRepository
	Movies() MovieRepository
}

// JobRepository is the durable job store. Missing rows surface as errors
// marked errs.ErrNotFound; I/O failures as errs.ErrStore.
type JobRepository interface {
	Insert(ctx context.Context, j *job.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error)
	// Row-locks the job until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*job.Job, error)
	FindByDedupKey(ctx context.Context, key string) (*job.Job, error)
	// Pending jobs with scheduledFor ≤ now, priority desc then createdAt asc. Read-only.
	QueryEligible(ctx context.Context, now time.Time, limit int) ([]*job.Job, error)
	// Same selection as QueryEligible, atomically moved to processing under token.
	// Rows locked by a concurrent claimer are skipped.
	ClaimEligible(ctx context.Context, now time.Time, token string, leaseUntil time.Time, limit int) ([]*job.Job, error)
	Update(ctx context.Context, j *job.Job) error
	CountByStatus(ctx context.Context) (map[job.Status]int64, error)
	// Only completed jobs with processedAt < cutoff.
	DeleteCompletedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	FindExpiredLeases(ctx context.Context, now time.Time, limit int) ([]*job.Job, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page Page) ([]*user.User, error)
	Count(ctx context.Context) (int64, error)
}

type MovieRepository interface {
	Create(ctx context.Context, m *movie.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*movie.Movie, error)
	Update(ctx context.Context, m *movie.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter MovieFilter, page Page) ([]*movie.Movie, error)
	Count(ctx context.Context) (int64, error)
}
