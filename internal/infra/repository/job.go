package repository

import (
	"context"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/infra"
	"gin-jobqueue/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const jobColumns = `
	id, type, payload, status, priority, attempts, max_attempts, error,
	scheduled_for, processed_at, claimed_by, lease_expires_at, dedup_key,
	created_at, updated_at`

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Insert(ctx context.Context, j *job.Job) error {
	s := j.Snapshot()
	_, err := r.db.Exec(ctx, `
		INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, string(s.Type), []byte(s.Payload), string(s.Status), s.Priority, s.Attempts, s.MaxAttempts,
		pgconv.StringPtrToPgtype(s.Error), s.ScheduledFor, pgconv.TimePtrToPgtype(s.ProcessedAt),
		pgconv.StringPtrToPgtype(s.ClaimedBy), pgconv.TimePtrToPgtype(s.LeaseExpiresAt),
		pgconv.StringPtrToPgtype(s.DedupKey), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if _, dup := pgconv.IsUniqueViolation(err); dup {
			return infra.WrapRepoErr("job dedup key already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert job", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return r.scanOne(row, "failed to find job by ID")
}

func (r *JobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id)
	return r.scanOne(row, "failed to lock job")
}

func (r *JobRepository) FindByDedupKey(ctx context.Context, key string) (*job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE dedup_key = $1`, key)
	return r.scanOne(row, "failed to find job by dedup key")
}

func (r *JobRepository) QueryEligible(ctx context.Context, now time.Time, limit int) ([]*job.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE status = 'pending' AND scheduled_for <= $1
		ORDER BY priority DESC, created_at ASC
		LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query eligible jobs", err)
	}
	return collectJobs(rows)
}

// ClaimEligible selects and transitions in one statement. FOR UPDATE SKIP
// LOCKED lets concurrent claimers split the eligible set instead of
// blocking on each other.
func (r *JobRepository) ClaimEligible(ctx context.Context, now time.Time, token string, leaseUntil time.Time, limit int) ([]*job.Job, error) {
	rows, err := r.db.Query(ctx, `
		WITH claimed AS (
			UPDATE jobs
			SET status = 'processing', claimed_by = $2, lease_expires_at = $3, updated_at = $1
			WHERE id IN (
				SELECT id FROM jobs
				WHERE status = 'pending' AND scheduled_for <= $1
				ORDER BY priority DESC, created_at ASC
				FOR UPDATE SKIP LOCKED
				LIMIT $4
			)
			RETURNING `+jobColumns+`
		)
		SELECT `+jobColumns+` FROM claimed ORDER BY priority DESC, created_at ASC`,
		now, token, leaseUntil, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	s := j.Snapshot()
	tag, err := r.db.Exec(ctx, `
		UPDATE jobs SET
			status = $2, attempts = $3, error = $4, scheduled_for = $5,
			processed_at = $6, claimed_by = $7, lease_expires_at = $8, updated_at = $9
		WHERE id = $1`,
		s.ID, string(s.Status), s.Attempts, pgconv.StringPtrToPgtype(s.Error), s.ScheduledFor,
		pgconv.TimePtrToPgtype(s.ProcessedAt), pgconv.StringPtrToPgtype(s.ClaimedBy),
		pgconv.TimePtrToPgtype(s.LeaseExpiresAt), s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update job", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("job not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *JobRepository) CountByStatus(ctx context.Context) (map[job.Status]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count jobs by status", err)
	}
	defer rows.Close()

	counts := make(map[job.Status]int64, len(job.AllStatuses()))
	for _, s := range job.AllStatuses() {
		counts[s] = 0
	}
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan job count", err)
		}
		counts[job.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate job counts", err)
	}
	return counts, nil
}

func (r *JobRepository) DeleteCompletedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM jobs WHERE status = 'completed' AND processed_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete completed jobs", err)
	}
	return tag.RowsAffected(), nil
}

func (r *JobRepository) FindExpiredLeases(ctx context.Context, now time.Time, limit int) ([]*job.Job, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE status = 'processing' AND lease_expires_at <= $1
		ORDER BY lease_expires_at ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED`,
		now, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired leases", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) scanOne(row pgx.Row, msg string) (*job.Job, error) {
	j, err := scanJob(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("job not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(msg, err)
	}
	return j, nil
}

func collectJobs(rows pgx.Rows) ([]*job.Job, error) {
	defer rows.Close()

	var jobs []*job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate jobs", err)
	}
	return jobs, nil
}

func scanJob(row rowScanner) (*job.Job, error) {
	var (
		s              job.Snapshot
		jobType        string
		status         string
		payload        []byte
		lastError      pgtype.Text
		processedAt    pgtype.Timestamptz
		claimedBy      pgtype.Text
		leaseExpiresAt pgtype.Timestamptz
		dedupKey       pgtype.Text
	)
	err := row.Scan(
		&s.ID, &jobType, &payload, &status, &s.Priority, &s.Attempts, &s.MaxAttempts, &lastError,
		&s.ScheduledFor, &processedAt, &claimedBy, &leaseExpiresAt, &dedupKey,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Type = job.Type(jobType)
	s.Status = job.Status(status)
	s.Payload = payload
	s.Error = pgconv.StringPtrFromPgtype(lastError)
	s.ProcessedAt = pgconv.TimePtrFromPgtype(processedAt)
	s.ClaimedBy = pgconv.StringPtrFromPgtype(claimedBy)
	s.LeaseExpiresAt = pgconv.TimePtrFromPgtype(leaseExpiresAt)
	s.DedupKey = pgconv.StringPtrFromPgtype(dedupKey)
	s.ScheduledFor = s.ScheduledFor.UTC()
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return job.Reconstruct(s), nil
}
