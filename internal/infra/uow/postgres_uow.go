package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"gin-jobqueue/internal/infra/repository"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// RetryPolicy governs re-running a transaction that hit a serialization
// failure or deadlock. Attempt n waits base·2ⁿ plus up to 20% jitter.
type RetryPolicy struct {
	MaxRetries int
	Base       time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, Base: 100 * time.Millisecond}

func (p RetryPolicy) shouldRetry(err error, attempt int) bool {
	return attempt < p.MaxRetries && isRetryableError(err)
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	wait := time.Duration(1<<attempt) * p.Base
	if spread := int64(wait / 5); spread > 0 {
		wait += time.Duration(rand.Int64N(spread))
	}
	return wait
}

type PostgresUoW struct {
	pool   *pgxpool.Pool
	retry  RetryPolicy
	logger *slog.Logger
}

type Option func(*PostgresUoW)

func WithLogger(l *slog.Logger) Option {
	return func(u *PostgresUoW) { u.logger = l }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(u *PostgresUoW) { u.retry = p }
}

func NewPostgresUoW(pool *pgxpool.Pool, opts ...Option) shared.UnitOfWork {
	u := &PostgresUoW{
		pool:   pool,
		retry:  DefaultRetryPolicy,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Within runs fn at ReadCommitted; job rows are locked explicitly by the repositories.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	for attempt := 0; ; attempt++ {
		err := u.runOnce(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !u.retry.shouldRetry(err, attempt) {
			if attempt > 0 && isRetryableError(err) {
				u.logger.Error("transaction failed after max retries", "attempts", attempt+1, "error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		wait := u.retry.backoff(attempt)
		u.logger.Warn("retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return storeErr(ctx.Err(), errTransactionBegin)
		case <-time.After(wait):
		}
	}
}

// WithinReadOnly gives fn a consistent snapshot across tables; it is never retried.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runOnce(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) runOnce(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return storeErr(err, errTransactionBegin)
	}
	// No-op after Commit. Detached so a cancelled ctx still releases the connection.
	defer func() {
		if rbErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			u.logger.Warn("rollback failed", "error", rbErr.Error())
		}
	}()

	if err := fn(ctx, newPgTx(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return storeErr(err, errTransactionCommit)
	}
	return nil
}

func storeErr(err, mark error) error {
	return errs.Mark(errs.Mark(err, mark), errs.ErrStore)
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

// pgTx hands out repositories bound to one pgx transaction, built on first use.
type pgTx struct {
	dbtx repository.DBTX

	jobs   shared.JobRepository
	users  shared.UserRepository
	movies shared.MovieRepository
}

func newPgTx(dbtx repository.DBTX) *pgTx {
	return &pgTx{dbtx: dbtx}
}

func (t *pgTx) Jobs() shared.JobRepository {
	if t.jobs == nil {
		t.jobs = repository.NewJobRepository(t.dbtx)
	}
	return t.jobs
}

func (t *pgTx) Users() shared.UserRepository {
	if t.users == nil {
		t.users = repository.NewUserRepository(t.dbtx)
	}
	return t.users
}

func (t *pgTx) Movies() shared.MovieRepository {
	if t.movies == nil {
		t.movies = repository.NewMovieRepository(t.dbtx)
	}
	return t.movies
}
