package queries

//go:generate mockgen -source=movie.go -destination=../../testutil/mock/queries/movie_mock.go -package=queriesmock

import (
	"context"
	"strings"

	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

type MovieListRequest struct {
	PageRequest
	Genre string
	Year  *int32
}

type MovieQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*MovieView, error)
	List(ctx context.Context, req MovieListRequest) ([]MovieView, error)
}

type movieQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewMovieQueries(uow shared.UnitOfWork) MovieQueries {
	return &movieQueriesImpl{uow: uow}
}

func (q *movieQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*MovieView, error) {
	var view MovieView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Movies().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = m.Props()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (q *movieQueriesImpl) List(ctx context.Context, req MovieListRequest) ([]MovieView, error) {
	page, err := req.PageRequest.normalize()
	if err != nil {
		return nil, err
	}
	filter := shared.MovieFilter{Genre: strings.TrimSpace(req.Genre), Year: req.Year}

	views := []MovieView{}
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		movies, err := tx.Movies().List(ctx, filter, page.toShared())
		if err != nil {
			return err
		}
		for _, m := range movies {
			views = append(views, m.Props())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
