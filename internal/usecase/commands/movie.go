package commands

//go:generate mockgen -source=movie.go -destination=../../testutil/mock/commands/movie_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/queue"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateMovieInput struct {
	Title          string
	Genre          []string
	ReleaseYear    *int32
	Director       string
	Cast           []string
	Synopsis       string
	PosterURL      string
	IdempotencyKey string
}

// UpdateMovieInput: nil fields are left unchanged. An empty, non-nil slice clears the field.
type UpdateMovieInput struct {
	Title          *string
	Genre          []string
	ReleaseYear    *int32
	Director       *string
	Cast           []string
	Synopsis       *string
	PosterURL      *string
	AverageRating  *float64
	IdempotencyKey string
}

type MovieCommands interface {
	Create(ctx context.Context, in CreateMovieInput) (*job.Job, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateMovieInput) (*job.Job, error)
}

type movieCommandsImpl struct {
	uow    shared.UnitOfWork
	queue  queue.Service
	logger *slog.Logger
}

func NewMovieCommands(uow shared.UnitOfWork, queueSvc queue.Service, logger *slog.Logger) MovieCommands {
	return &movieCommandsImpl{uow: uow, queue: queueSvc, logger: logger}
}

func (m *movieCommandsImpl) Create(ctx context.Context, in CreateMovieInput) (*job.Job, error) {
	raw, err := encodePayload(queue.MovieInsertPayload{
		Title:       in.Title,
		Genre:       in.Genre,
		ReleaseYear: in.ReleaseYear,
		Director:    in.Director,
		Cast:        in.Cast,
		Synopsis:    in.Synopsis,
		PosterURL:   in.PosterURL,
	}, job.TypeMovieInsert.String())
	if err != nil {
		return nil, err
	}

	j, err := m.queue.Enqueue(ctx, queue.EnqueueRequest{
		Type:     job.TypeMovieInsert,
		Payload:  raw,
		Priority: PriorityMovieInsert,
		DedupKey: in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("movie insert queued", "job_id", j.ID(), "title", in.Title)
	return j, nil
}

func (m *movieCommandsImpl) Update(ctx context.Context, id uuid.UUID, in UpdateMovieInput) (*job.Job, error) {
	err := m.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Movies().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	raw, err := encodePayload(queue.MovieUpdatePayload{
		ID:            id,
		Title:         in.Title,
		Genre:         in.Genre,
		ReleaseYear:   in.ReleaseYear,
		Director:      in.Director,
		Cast:          in.Cast,
		Synopsis:      in.Synopsis,
		PosterURL:     in.PosterURL,
		AverageRating: in.AverageRating,
	}, job.TypeMovieUpdate.String())
	if err != nil {
		return nil, err
	}

	j, err := m.queue.Enqueue(ctx, queue.EnqueueRequest{
		Type:     job.TypeMovieUpdate,
		Payload:  raw,
		Priority: PriorityDefault,
		DedupKey: in.IdempotencyKey,
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to enqueue movie update")
	}

	m.logger.Info("movie update queued", "job_id", j.ID(), "movie_id", id)
	return j, nil
}
