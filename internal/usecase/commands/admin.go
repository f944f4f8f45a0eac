package commands

//go:generate mockgen -source=admin.go -destination=../../testutil/mock/commands/admin_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCannotDeleteAdmin = errs.Mark(errs.New("cannot delete admin users"), errs.ErrForbidden)
	ErrCannotDeleteSelf  = errs.Mark(errs.New("cannot delete your own account"), errs.ErrForbidden)
)

// AdminCommands are synchronous; deletes do not go through the queue.
type AdminCommands interface {
	DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error
	DeleteMovie(ctx context.Context, actor Actor, id uuid.UUID) error
}

type adminCommandsImpl struct {
	uow    shared.UnitOfWork
	logger *slog.Logger
}

func NewAdminCommands(uow shared.UnitOfWork, logger *slog.Logger) AdminCommands {
	return &adminCommandsImpl{uow: uow, logger: logger}
}

func (a *adminCommandsImpl) DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if target.IsAdmin() {
			return ErrCannotDeleteAdmin
		}
		if target.ID() == actor.ID {
			return ErrCannotDeleteSelf
		}
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	a.logger.Info("user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}

func (a *adminCommandsImpl) DeleteMovie(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Movies().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	a.logger.Info("movie deleted", "movie_id", id, "actor_id", actor.ID)
	return nil
}
