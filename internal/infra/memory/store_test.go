//go:build unit

package memory_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/infra/memory"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newJob(t *testing.T, priority int, createdAt time.Time) *job.Job {
	t.Helper()
	j, err := job.New(job.NewParams{
		Type:     job.TypeMovieInsert,
		Payload:  json.RawMessage(`{"title":"x"}`),
		Priority: priority,
	}, createdAt)
	require.NoError(t, err)
	return j
}

func insert(t *testing.T, uow shared.UnitOfWork, jobs ...*job.Job) {
	t.Helper()
	err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		for _, j := range jobs {
			if err := tx.Jobs().Insert(ctx, j); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestWithin_Rollback(t *testing.T) {
	uow := memory.NewUoW(memory.NewStore())
	j := newJob(t, 0, now)

	err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Jobs().Insert(ctx, j))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	err = uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Jobs().FindByID(ctx, j.ID())
		return err
	})
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestWithin_DeadlineBlocksCommit(t *testing.T) {
	uow := memory.NewUoW(memory.NewStore())
	j := newJob(t, 0, now)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Jobs().Insert(ctx, j); err != nil {
			return err
		}
		<-ctx.Done()
		return nil
	})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrStore))

	err = uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Jobs().FindByID(ctx, j.ID())
		return err
	})
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestWithinReadOnly_RejectsWrites(t *testing.T) {
	uow := memory.NewUoW(memory.NewStore())
	err := uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Jobs().Insert(ctx, newJob(t, 0, now))
	})
	assert.True(t, errs.Is(err, errs.ErrStore))
}

func TestJobs_EligibleOrderAndClaim(t *testing.T) {
	uow := memory.NewUoW(memory.NewStore())

	low := newJob(t, 0, now.Add(-3*time.Minute))
	highOld := newJob(t, 2, now.Add(-2*time.Minute))
	highNew := newJob(t, 2, now.Add(-1*time.Minute))
	future, err := job.New(job.NewParams{
		Type:         job.TypeMovieInsert,
		Payload:      json.RawMessage(`{}`),
		Priority:     9,
		ScheduledFor: now.Add(time.Hour),
	}, now)
	require.NoError(t, err)
	insert(t, uow, low, highNew, future, highOld)

	t.Run("優先度降順・作成日時昇順", func(t *testing.T) {
		err := uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			jobs, err := tx.Jobs().QueryEligible(ctx, now, 10)
			require.NoError(t, err)
			require.Len(t, jobs, 3)
			assert.Equal(t, highOld.ID(), jobs[0].ID())
			assert.Equal(t, highNew.ID(), jobs[1].ID())
			assert.Equal(t, low.ID(), jobs[2].ID())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("クレームは上限件数まで", func(t *testing.T) {
		leaseUntil := now.Add(time.Minute)
		var claimed []*job.Job
		err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			var err error
			claimed, err = tx.Jobs().ClaimEligible(ctx, now, "w1:a", leaseUntil, 2)
			return err
		})
		require.NoError(t, err)
		require.Len(t, claimed, 2)
		for _, j := range claimed {
			assert.True(t, j.HoldsLease("w1:a"))
		}

		err = uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			rest, err := tx.Jobs().ClaimEligible(ctx, now, "w2:b", leaseUntil, 5)
			require.NoError(t, err)
			require.Len(t, rest, 1)
			assert.Equal(t, low.ID(), rest[0].ID())

			expired, err := tx.Jobs().FindExpiredLeases(ctx, leaseUntil, 10)
			require.NoError(t, err)
			assert.Len(t, expired, 3)
			return nil
		})
		require.NoError(t, err)
	})
}

func TestJobs_DedupAndCounts(t *testing.T) {
	uow := memory.NewUoW(memory.NewStore())
	j, err := job.New(job.NewParams{Type: job.TypeUserInsert, Payload: json.RawMessage(`{}`), DedupKey: "k1"}, now)
	require.NoError(t, err)
	insert(t, uow, j)

	dup, err := job.New(job.NewParams{Type: job.TypeUserInsert, Payload: json.RawMessage(`{}`), DedupKey: "k1"}, now)
	require.NoError(t, err)
	err = uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Jobs().Insert(ctx, dup)
	})
	assert.True(t, errs.Is(err, errs.ErrConflict))

	err = uow.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Jobs().FindByDedupKey(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, j.ID(), found.ID())

		counts, err := tx.Jobs().CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[job.Status]int64{
			job.StatusPending:    1,
			job.StatusProcessing: 0,
			job.StatusCompleted:  0,
			job.StatusFailed:     0,
		}, counts)
		return nil
	})
	require.NoError(t, err)
}

func TestJobs_DeleteCompletedOlderThan(t *testing.T) {
	uow := memory.NewUoW(memory.NewStore())
	old := newJob(t, 0, now)
	recent := newJob(t, 0, now)
	pending := newJob(t, 0, now)
	require.NoError(t, old.Start(now))
	require.NoError(t, old.Complete(now.Add(-40*24*time.Hour)))
	require.NoError(t, recent.Start(now))
	require.NoError(t, recent.Complete(now))
	insert(t, uow, old, recent, pending)

	var deleted int64
	err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		deleted, err = tx.Jobs().DeleteCompletedOlderThan(ctx, now.Add(-30*24*time.Hour))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestUsers_UniqueEmail(t *testing.T) {
	uow := memory.NewUoW(memory.NewStore())
	mk := func(name string) *user.User {
		u, err := user.NewUser(user.Props{Username: name, Email: "same@example.com", PasswordHash: "h"}, now)
		require.NoError(t, err)
		return u
	}

	err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, mk("alice"))
	})
	require.NoError(t, err)

	err = uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Create(ctx, mk("bob"))
	})
	assert.True(t, errs.Is(err, errs.ErrConflict))
}
