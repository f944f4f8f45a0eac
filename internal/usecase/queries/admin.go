package queries

//go:generate mockgen -source=admin.go -destination=../../testutil/mock/queries/admin_mock.go -package=queriesmock

import (
	"context"

	"gin-jobqueue/internal/usecase/shared"
)

type AdminQueries interface {
	Stats(ctx context.Context) (*AdminStats, error)
}

type adminQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAdminQueries(uow shared.UnitOfWork) AdminQueries {
	return &adminQueriesImpl{uow: uow}
}

func (q *adminQueriesImpl) Stats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if stats.TotalUsers, err = tx.Users().Count(ctx); err != nil {
			return err
		}
		stats.TotalMovies, err = tx.Movies().Count(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
