//go:build unit

package job_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gin-jobqueue/internal/domain/job"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newJob(t *testing.T, mutate func(p *job.NewParams)) *job.Job {
	t.Helper()
	p := job.NewParams{
		Type:    job.TypeMovieInsert,
		Payload: json.RawMessage(`{"title":"Alien"}`),
	}
	if mutate != nil {
		mutate(&p)
	}
	j, err := job.New(p, now)
	require.NoError(t, err)
	return j
}

func TestNew(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		actual := newJob(t, nil)

		expected := job.Snapshot{
			Type:         job.TypeMovieInsert,
			Payload:      json.RawMessage(`{"title":"Alien"}`),
			Status:       job.StatusPending,
			MaxAttempts:  job.DefaultMaxAttempts,
			ScheduledFor: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		opts := []cmp.Option{cmpopts.IgnoreFields(job.Snapshot{}, "ID"), cmpopts.EquateEmpty()}
		if diff := cmp.Diff(expected, actual.Snapshot(), opts...); diff != "" {
			t.Errorf("Job mismatch (-want +got):\n%s", diff)
		}
		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsEligible(now))
	})

	t.Run("入力検証", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(p *job.NewParams)
			errIs  error
		}{
			{name: "未知のタイプNG", mutate: func(p *job.NewParams) { p.Type = "entity_delete" }, errIs: job.ErrInvalidType},
			{name: "配列ペイロードNG", mutate: func(p *job.NewParams) { p.Payload = json.RawMessage(`[1,2]`) }, errIs: job.ErrInvalidPayload},
			{name: "空ペイロードNG", mutate: func(p *job.NewParams) { p.Payload = nil }, errIs: job.ErrInvalidPayload},
			{name: "壊れたJSON NG", mutate: func(p *job.NewParams) { p.Payload = json.RawMessage(`{"a":`) }, errIs: job.ErrInvalidPayload},
			{name: "maxAttempts負数NG", mutate: func(p *job.NewParams) { p.MaxAttempts = -1 }, errIs: job.ErrInvalidMaxAttempts},
			{name: "maxAttempts上限超過NG", mutate: func(p *job.NewParams) { p.MaxAttempts = job.MaxAttemptsLimit + 1 }, errIs: job.ErrInvalidMaxAttempts},
			{name: "優先度の下限OK", mutate: func(p *job.NewParams) { p.Priority = job.MinPriority }},
			{name: "優先度の上限OK", mutate: func(p *job.NewParams) { p.Priority = job.MaxPriority }},
			{name: "優先度の上限超過NG", mutate: func(p *job.NewParams) { p.Priority = job.MaxPriority + 1 }, errIs: job.ErrInvalidPriority},
			{name: "優先度の下限未満NG", mutate: func(p *job.NewParams) { p.Priority = job.MinPriority - 1 }, errIs: job.ErrInvalidPriority},
			{name: "dedupKey長すぎNG", mutate: func(p *job.NewParams) { p.DedupKey = strings.Repeat("k", job.MaxDedupKeyLen+1) }, errIs: job.ErrDedupKeyTooLong},
			{name: "maxAttempts=1 OK", mutate: func(p *job.NewParams) { p.MaxAttempts = 1 }},
			{name: "将来予定OK", mutate: func(p *job.NewParams) { p.ScheduledFor = now.Add(time.Hour) }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				p := job.NewParams{Type: job.TypeUserInsert, Payload: json.RawMessage(`{}`)}
				tc.mutate(&p)
				j, err := job.New(p, now)
				if tc.errIs == nil {
					require.NoError(t, err)
					require.NotNil(t, j)
					return
				}
				require.Nil(t, j)
				require.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("将来予定のジョブは適格でない", func(t *testing.T) {
		j := newJob(t, func(p *job.NewParams) { p.ScheduledFor = now.Add(time.Minute) })
		assert.False(t, j.IsEligible(now))
		assert.True(t, j.IsEligible(now.Add(time.Minute)))
	})
}

func TestTransitions(t *testing.T) {
	t.Run("pending→processing→completed", func(t *testing.T) {
		j := newJob(t, nil)
		require.NoError(t, j.Start(now))
		require.NoError(t, j.Complete(now.Add(time.Second)))

		assert.Equal(t, job.StatusCompleted, j.Status())
		require.NotNil(t, j.ProcessedAt())
		assert.Equal(t, now.Add(time.Second), *j.ProcessedAt())
	})

	t.Run("claimはリースを設定しcompleteで解放される", func(t *testing.T) {
		j := newJob(t, nil)
		require.NoError(t, j.Claim("worker-1:abc", now.Add(time.Minute), now))

		assert.True(t, j.HoldsLease("worker-1:abc"))
		assert.False(t, j.HoldsLease("worker-2:def"))
		assert.False(t, j.LeaseExpired(now))
		assert.True(t, j.LeaseExpired(now.Add(time.Minute)))

		require.NoError(t, j.Complete(now))
		assert.Nil(t, j.ClaimedBy())
		assert.Nil(t, j.LeaseExpiresAt())
	})

	t.Run("不正な遷移はNG", func(t *testing.T) {
		j := newJob(t, nil)
		assert.ErrorIs(t, j.Complete(now), job.ErrInvalidTransition)
		_, err := j.RecordFailure("boom", now)
		assert.ErrorIs(t, err, job.ErrInvalidTransition)

		require.NoError(t, j.Start(now))
		assert.ErrorIs(t, j.Start(now), job.ErrInvalidTransition)
		assert.ErrorIs(t, j.Claim("t", now, now), job.ErrInvalidTransition)

		require.NoError(t, j.Complete(now))
		assert.ErrorIs(t, j.Start(now), job.ErrInvalidTransition)
		assert.ErrorIs(t, j.Terminate("x", now), job.ErrInvalidTransition)
	})

	t.Run("予定前のジョブはclaimできない", func(t *testing.T) {
		j := newJob(t, func(p *job.NewParams) { p.ScheduledFor = now.Add(time.Hour) })
		assert.ErrorIs(t, j.Claim("t", now.Add(time.Minute), now), job.ErrInvalidTransition)
	})
}

func TestRecordFailure(t *testing.T) {
	t.Run("k回目の失敗でscheduledFor = 失敗時刻 + 2^k 秒", func(t *testing.T) {
		j := newJob(t, func(p *job.NewParams) { p.MaxAttempts = 5 })
		failedAt := now
		for k := 1; k <= 4; k++ {
			require.NoError(t, j.Start(failedAt))
			terminal, err := j.RecordFailure("boom", failedAt)
			require.NoError(t, err)
			require.False(t, terminal)

			assert.Equal(t, k, j.Attempts())
			assert.Equal(t, job.StatusPending, j.Status())
			assert.Equal(t, failedAt.Add(time.Duration(1<<k)*time.Second), j.ScheduledFor())
			require.NotNil(t, j.Error())
			assert.Equal(t, "boom", *j.Error())
			failedAt = j.ScheduledFor()
		}
	})

	t.Run("maxAttempts到達でfailed、attempts = maxAttempts", func(t *testing.T) {
		j := newJob(t, func(p *job.NewParams) { p.MaxAttempts = 2 })
		for i := 0; i < 2; i++ {
			require.NoError(t, j.Start(now))
			_, err := j.RecordFailure("always fails", now)
			require.NoError(t, err)
		}
		assert.Equal(t, job.StatusFailed, j.Status())
		assert.Equal(t, 2, j.Attempts())
		assert.Nil(t, j.ProcessedAt())
		require.NotNil(t, j.Error())
	})

	t.Run("Terminateは残り試行を使い切る", func(t *testing.T) {
		j := newJob(t, nil)
		require.NoError(t, j.Claim("t", now.Add(time.Minute), now))
		require.NoError(t, j.Terminate("user not found", now))

		assert.Equal(t, job.StatusFailed, j.Status())
		assert.Equal(t, j.MaxAttempts(), j.Attempts())
		assert.Nil(t, j.ClaimedBy())
	})
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 2*time.Second, job.Backoff(1))
	assert.Equal(t, 8*time.Second, job.Backoff(3))
	assert.Equal(t, time.Second, job.Backoff(-1))
	assert.Equal(t, job.Backoff(job.MaxAttemptsLimit), job.Backoff(100))
}

func TestReconstruct(t *testing.T) {
	original := newJob(t, func(p *job.NewParams) { p.DedupKey = "signup:alice" })
	rebuilt := job.Reconstruct(original.Snapshot())

	if diff := cmp.Diff(original.Snapshot(), rebuilt.Snapshot()); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, rebuilt.DedupKey())
	assert.Equal(t, "signup:alice", *rebuilt.DedupKey())
}
