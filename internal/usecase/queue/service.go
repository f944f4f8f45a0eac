package queue

//go:generate mockgen -source=service.go -destination=../../testutil/mock/queue/service_mock.go -package=queuemock

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/metrics"
	"gin-jobqueue/internal/pkg/clock"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

const leaseExpiredMessage = "lease expired"

type EnqueueRequest struct {
	Type    job.Type
	Payload json.RawMessage
	// Higher runs first.
	Priority int
	// Zero means now.
	ScheduledFor time.Time
	// Zero means the configured default.
	MaxAttempts int
	// Optional; an existing job with the same key is returned instead of inserting.
	DedupKey string
}

type Claim struct {
	Job   *job.Job
	Token string
}

type Stats struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}

type Service interface {
	Enqueue(ctx context.Context, req EnqueueRequest) (*job.Job, error)
	FetchEligible(ctx context.Context, limit int) ([]*job.Job, error)
	Claim(ctx context.Context, workerName string, limit int) ([]Claim, error)
	ProcessOne(ctx context.Context, id uuid.UUID, opts ...ProcessOption) error
	Get(ctx context.Context, id uuid.UUID) (*job.Job, error)
	Stats(ctx context.Context) (Stats, error)
	Cleanup(ctx context.Context, daysOld int) (int64, error)
	ReapExpiredLeases(ctx context.Context, limit int) (int, error)
}

type service struct {
	uow      shared.UnitOfWork
	registry *Registry
	clock    clock.Clock
	metrics  metrics.Recorder
	logger   *slog.Logger
	opts     Options
}

func NewService(
	uow shared.UnitOfWork,
	registry *Registry,
	clk clock.Clock,
	recorder metrics.Recorder,
	logger *slog.Logger,
	opts Options,
) Service {
	return &service{
		uow:      uow,
		registry: registry,
		clock:    clk,
		metrics:  recorder,
		logger:   logger,
		opts:     opts.withDefaults(),
	}
}

func (s *service) Enqueue(ctx context.Context, req EnqueueRequest) (*job.Job, error) {
	if err := s.registry.Validate(req.Type, req.Payload); err != nil {
		return nil, err
	}

	maxAttempts := req.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = s.opts.DefaultMaxAttempts
	}

	j, err := job.New(job.NewParams{
		Type:         req.Type,
		Payload:      req.Payload,
		Priority:     req.Priority,
		ScheduledFor: req.ScheduledFor,
		MaxAttempts:  maxAttempts,
		DedupKey:     req.DedupKey,
	}, s.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	var existing *job.Job
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing = nil
		if key := j.DedupKey(); key != nil {
			found, err := tx.Jobs().FindByDedupKey(ctx, *key)
			if err == nil {
				existing = found
				return nil
			}
			if !errs.Is(err, errs.ErrNotFound) {
				return err
			}
		}
		return tx.Jobs().Insert(ctx, j)
	})
	if err != nil {
		// A concurrent producer won the insert race for the same key.
		if key := j.DedupKey(); key != nil && errs.Is(err, errs.ErrConflict) {
			return s.findByDedupKey(ctx, *key)
		}
		return nil, err
	}
	if existing != nil {
		s.logger.Debug("enqueue deduplicated", "job_id", existing.ID(), "dedup_key", *j.DedupKey())
		return existing, nil
	}

	s.metrics.JobEnqueued(ctx, j.Type())
	s.logger.Debug("job enqueued",
		"job_id", j.ID(),
		"type", j.Type(),
		"priority", j.Priority(),
		"scheduled_for", j.ScheduledFor())
	return j, nil
}

func (s *service) findByDedupKey(ctx context.Context, key string) (*job.Job, error) {
	var found *job.Job
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Jobs().FindByDedupKey(ctx, key)
		return err
	})
	return found, err
}

func (s *service) FetchEligible(ctx context.Context, limit int) ([]*job.Job, error) {
	if limit <= 0 {
		return []*job.Job{}, nil
	}
	var jobs []*job.Job
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		jobs, err = tx.Jobs().QueryEligible(ctx, s.clock.Now(), limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Claim moves up to limit eligible jobs to processing under one fresh lease
// token. Concurrent claimers never receive the same job.
func (s *service) Claim(ctx context.Context, workerName string, limit int) ([]Claim, error) {
	if limit <= 0 {
		return nil, nil
	}

	token := workerName + ":" + uuid.NewString()
	var jobs []*job.Job
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := s.clock.Now()
		var err error
		jobs, err = tx.Jobs().ClaimEligible(ctx, now, token, now.Add(s.opts.LeaseDuration), limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	claims := make([]Claim, 0, len(jobs))
	for _, j := range jobs {
		claims = append(claims, Claim{Job: j, Token: token})
	}
	return claims, nil
}

// ProcessOne applies the job's handler and marks it completed in a single
// transaction. On failure that transaction is rolled back and the attempt is
// recorded in a second one.
func (s *service) ProcessOne(ctx context.Context, id uuid.UUID, opts ...ProcessOption) error {
	var o processOptions
	for _, opt := range opts {
		opt(&o)
	}

	started := s.clock.Now()
	var (
		jobType  job.Type
		attempts int
		accepted bool
	)
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		accepted = false

		j, err := tx.Jobs().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		jobType, attempts = j.Type(), j.Attempts()

		if o.leaseToken == "" {
			if err := j.Start(s.clock.Now()); err != nil {
				return errs.Mark(errs.Wrapf(err, "job %s is %s", id, j.Status()), errs.ErrState)
			}
		} else if !j.HoldsLease(o.leaseToken) {
			return errs.Mark(errs.Wrapf(job.ErrLeaseMismatch, "job %s is %s", id, j.Status()), errs.ErrState)
		}
		accepted = true

		if err := s.registry.Apply(ctx, tx, j); err != nil {
			return err
		}
		if err := j.Complete(s.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrState)
		}
		return tx.Jobs().Update(ctx, j)
	})

	elapsed := s.clock.Now().Sub(started)
	if err == nil {
		s.metrics.JobSettled(ctx, jobType, metrics.OutcomeCompleted, elapsed)
		s.logger.Info("job completed", "job_id", id, "type", jobType, "elapsed_ms", elapsed.Milliseconds())
		return nil
	}
	if !accepted {
		s.metrics.JobSettled(ctx, jobType, metrics.OutcomeSkipped, elapsed)
		return err
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = errs.Mark(err, errs.ErrJobTimeout)
	}
	return s.recordFailure(ctx, id, jobType, attempts, o.leaseToken, err, elapsed)
}

// recordFailure runs detached from ctx's cancellation so a timed-out attempt
// is still counted.
func (s *service) recordFailure(
	ctx context.Context,
	id uuid.UUID,
	jobType job.Type,
	attemptsBefore int,
	leaseToken string,
	cause error,
	elapsed time.Duration,
) error {
	bkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.BookkeepingTimeout)
	defer cancel()

	var (
		recorded bool
		terminal bool
		attempts int
	)
	err := s.uow.Within(bkCtx, func(ctx context.Context, tx shared.Tx) error {
		recorded, terminal = false, false

		j, err := tx.Jobs().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if leaseToken != "" {
			if !j.HoldsLease(leaseToken) {
				return nil
			}
		} else {
			// The rolled-back attempt left the job exactly as it found it.
			if j.Status() != job.StatusPending || j.Attempts() != attemptsBefore {
				return nil
			}
			if err := j.Start(now); err != nil {
				return err
			}
		}

		if s.opts.FailFastOnNotFound && errs.Is(cause, errs.ErrNotFound) {
			if err := j.Terminate(cause.Error(), now); err != nil {
				return err
			}
			terminal = true
		} else {
			terminal, err = j.RecordFailure(cause.Error(), now)
			if err != nil {
				return err
			}
		}
		recorded, attempts = true, j.Attempts()
		return tx.Jobs().Update(ctx, j)
	})
	if err != nil {
		s.logger.Error("failed to record job failure",
			"job_id", id,
			"cause", cause.Error(),
			"error", err.Error())
		return cause
	}
	if !recorded {
		s.logger.Warn("job changed hands before failure could be recorded", "job_id", id, "cause", cause.Error())
		s.metrics.JobSettled(ctx, jobType, metrics.OutcomeSkipped, elapsed)
		return cause
	}

	if terminal {
		s.metrics.JobSettled(ctx, jobType, metrics.OutcomeFailed, elapsed)
		s.logger.Error("job failed permanently",
			"job_id", id,
			"type", jobType,
			"attempts", attempts,
			"error", cause.Error(),
			"stack", errs.ExtractStackLines(cause, 8))
		return errs.Mark(cause, errs.ErrExhaustedRetries)
	}

	s.metrics.JobSettled(ctx, jobType, metrics.OutcomeRetried, elapsed)
	s.logger.Warn("job attempt failed, will retry",
		"job_id", id,
		"type", jobType,
		"attempts", attempts,
		"retry_in", job.Backoff(attempts).String(),
		"error", cause.Error())
	return cause
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	var j *job.Job
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		j, err = tx.Jobs().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	var counts map[job.Status]int64
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		counts, err = tx.Jobs().CountByStatus(ctx)
		return err
	})
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Pending:    counts[job.StatusPending],
		Processing: counts[job.StatusProcessing],
		Completed:  counts[job.StatusCompleted],
		Failed:     counts[job.StatusFailed],
	}, nil
}

// Cleanup deletes completed jobs processed more than daysOld days ago.
func (s *service) Cleanup(ctx context.Context, daysOld int) (int64, error) {
	if daysOld < 0 {
		return 0, errs.Mark(errs.Newf("daysOld must not be negative, got %d", daysOld), errs.ErrValidation)
	}

	cutoff := s.clock.Now().Add(-time.Duration(daysOld) * 24 * time.Hour)
	var deleted int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		deleted, err = tx.Jobs().DeleteCompletedOlderThan(ctx, cutoff)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.metrics.JobsCleaned(ctx, deleted)
	s.logger.Info("completed jobs cleaned up", "days_old", daysOld, "cutoff", cutoff, "deleted", deleted)
	return deleted, nil
}

// ReapExpiredLeases records a failed attempt for every processing job whose
// lease ran out, so work held by a crashed worker is retried.
func (s *service) ReapExpiredLeases(ctx context.Context, limit int) (int, error) {
	var reaped []*job.Job
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reaped = reaped[:0]
		now := s.clock.Now()

		expired, err := tx.Jobs().FindExpiredLeases(ctx, now, limit)
		if err != nil {
			return err
		}
		for _, j := range expired {
			if _, err := j.RecordFailure(leaseExpiredMessage, now); err != nil {
				return errs.Mark(err, errs.ErrState)
			}
			if err := tx.Jobs().Update(ctx, j); err != nil {
				return err
			}
			reaped = append(reaped, j)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, j := range reaped {
		s.logger.Warn("reaped expired lease",
			"job_id", j.ID(),
			"type", j.Type(),
			"attempts", j.Attempts(),
			"status", j.Status())
	}
	s.metrics.LeasesReaped(ctx, len(reaped))
	return len(reaped), nil
}
