package memory

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/infra"

	"github.com/google/uuid"
)

type jobRepo struct {
	tx *memTx
}

func (r *jobRepo) Insert(_ context.Context, j *job.Job) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	s := j.Snapshot()
	if _, ok := r.tx.state.jobs[s.ID]; ok {
		return infra.WrapRepoErr("job already exists", nil, infra.KindDuplicateKey)
	}
	if s.DedupKey != nil {
		for _, other := range r.tx.state.jobs {
			if other.DedupKey != nil && *other.DedupKey == *s.DedupKey {
				return infra.WrapRepoErr("job dedup key already exists", nil, infra.KindDuplicateKey)
			}
		}
	}
	r.tx.state.jobs[s.ID] = s
	return nil
}

func (r *jobRepo) FindByID(_ context.Context, id uuid.UUID) (*job.Job, error) {
	s, ok := r.tx.state.jobs[id]
	if !ok {
		return nil, infra.WrapRepoErr("job not found", nil, infra.KindNotFound)
	}
	return job.Reconstruct(s), nil
}

// Transactions are already serialised, so no extra locking is needed.
func (r *jobRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	return r.FindByID(ctx, id)
}

func (r *jobRepo) FindByDedupKey(_ context.Context, key string) (*job.Job, error) {
	for _, s := range r.tx.state.jobs {
		if s.DedupKey != nil && *s.DedupKey == key {
			return job.Reconstruct(s), nil
		}
	}
	return nil, infra.WrapRepoErr("job not found", nil, infra.KindNotFound)
}

func (r *jobRepo) QueryEligible(_ context.Context, now time.Time, limit int) ([]*job.Job, error) {
	return r.eligible(now, limit), nil
}

func (r *jobRepo) ClaimEligible(_ context.Context, now time.Time, token string, leaseUntil time.Time, limit int) ([]*job.Job, error) {
	if err := r.tx.writable(); err != nil {
		return nil, err
	}
	jobs := r.eligible(now, limit)
	for _, j := range jobs {
		if err := j.Claim(token, leaseUntil, now); err != nil {
			return nil, infra.WrapRepoErr("failed to claim job", err)
		}
		r.tx.state.jobs[j.ID()] = j.Snapshot()
	}
	return jobs, nil
}

func (r *jobRepo) Update(_ context.Context, j *job.Job) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.state.jobs[j.ID()]; !ok {
		return infra.WrapRepoErr("job not found", nil, infra.KindNotFound)
	}
	r.tx.state.jobs[j.ID()] = j.Snapshot()
	return nil
}

func (r *jobRepo) CountByStatus(_ context.Context) (map[job.Status]int64, error) {
	counts := make(map[job.Status]int64, len(job.AllStatuses()))
	for _, s := range job.AllStatuses() {
		counts[s] = 0
	}
	for _, s := range r.tx.state.jobs {
		counts[s.Status]++
	}
	return counts, nil
}

func (r *jobRepo) DeleteCompletedOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	if err := r.tx.writable(); err != nil {
		return 0, err
	}
	var deleted int64
	for id, s := range r.tx.state.jobs {
		if s.Status == job.StatusCompleted && s.ProcessedAt != nil && s.ProcessedAt.Before(cutoff) {
			delete(r.tx.state.jobs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *jobRepo) FindExpiredLeases(_ context.Context, now time.Time, limit int) ([]*job.Job, error) {
	var out []*job.Job
	for _, s := range r.tx.state.jobs {
		if j := job.Reconstruct(s); j.LeaseExpired(now) {
			out = append(out, j)
		}
	}
	slices.SortFunc(out, func(a, b *job.Job) int {
		return a.LeaseExpiresAt().Compare(*b.LeaseExpiresAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *jobRepo) eligible(now time.Time, limit int) []*job.Job {
	var out []*job.Job
	for _, s := range r.tx.state.jobs {
		if j := job.Reconstruct(s); j.IsEligible(now) {
			out = append(out, j)
		}
	}
	slices.SortFunc(out, func(a, b *job.Job) int {
		if c := cmp.Compare(b.Priority(), a.Priority()); c != 0 {
			return c
		}
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		ai, bi := a.ID(), b.ID()
		return bytes.Compare(ai[:], bi[:])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
