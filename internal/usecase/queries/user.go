package queries

//go:generate mockgen -source=user.go -destination=../../testutil/mock/queries/user_mock.go -package=queriesmock

import (
	"context"

	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	// Newest first.
	List(ctx context.Context, req PageRequest) (*UserPage, error)
}

type userQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewUserQueries(uow shared.UnitOfWork) UserQueries {
	return &userQueriesImpl{uow: uow}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UserView, error) {
	var view UserView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = newUserView(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (q *userQueriesImpl) List(ctx context.Context, req PageRequest) (*UserPage, error) {
	req, err := req.normalize()
	if err != nil {
		return nil, err
	}

	var (
		users []*user.User
		total int64
	)
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if users, err = tx.Users().List(ctx, req.toShared()); err != nil {
			return err
		}
		total, err = tx.Users().Count(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}
	return &UserPage{Users: views, Pagination: newPagination(req.Page, req.Limit, total)}, nil
}
