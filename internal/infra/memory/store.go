// Package memory is a process-local store backend. Transactions are
// serialised and run against a copy of the state that replaces the live
// state only when the callback succeeds before its context ends.
package memory

import (
	"context"
	"maps"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/movie"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

type state struct {
	jobs   map[uuid.UUID]job.Snapshot
	users  map[uuid.UUID]user.Props
	movies map[uuid.UUID]movie.Props
}

func (s *state) clone() *state {
	return &state{
		jobs:   maps.Clone(s.jobs),
		users:  maps.Clone(s.users),
		movies: maps.Clone(s.movies),
	}
}

type Store struct {
	// Buffered channel of size one so lock acquisition can honour ctx.
	sem   chan struct{}
	state *state
}

func NewStore() *Store {
	return &Store{
		sem: make(chan struct{}, 1),
		state: &state{
			jobs:   make(map[uuid.UUID]job.Snapshot),
			users:  make(map[uuid.UUID]user.Props),
			movies: make(map[uuid.UUID]movie.Props),
		},
	}
}

func NewUoW(s *Store) shared.UnitOfWork {
	return s
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, false, fn)
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return s.run(ctx, true, fn)
}

func (s *Store) run(ctx context.Context, readOnly bool, fn func(ctx context.Context, tx shared.Tx) error) error {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return errs.Mark(errs.Wrap(ctx.Err(), "failed to begin transaction"), errs.ErrStore)
	}
	defer func() { <-s.sem }()

	working := s.state.clone()
	tx := &memTx{state: working, readOnly: readOnly}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if readOnly {
		return nil
	}
	// A commit never lands after the caller's deadline.
	if err := ctx.Err(); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to commit transaction"), errs.ErrStore)
	}
	s.state = working
	return nil
}

type memTx struct {
	state    *state
	readOnly bool
}

func (t *memTx) Jobs() shared.JobRepository     { return &jobRepo{tx: t} }
func (t *memTx) Users() shared.UserRepository   { return &userRepo{tx: t} }
func (t *memTx) Movies() shared.MovieRepository { return &movieRepo{tx: t} }

var errReadOnly = errs.Mark(errs.New("write attempted in read-only transaction"), errs.ErrStore)

func (t *memTx) writable() error {
	if t.readOnly {
		return errReadOnly
	}
	return nil
}
