package commands

//go:generate mockgen -source=user.go -destination=../../testutil/mock/commands/user_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/pkg/password"
	"gin-jobqueue/internal/usecase/queue"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

// UpdateUserInput: nil fields are left unchanged.
type UpdateUserInput struct {
	Username       *string
	Email          *string
	Password       *string
	ProfilePicture *string
	// Admin only.
	Role           *string
	IdempotencyKey string
}

type UserCommands interface {
	Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateUserInput) (*job.Job, error)
}

type userCommandsImpl struct {
	uow    shared.UnitOfWork
	queue  queue.Service
	logger *slog.Logger
}

func NewUserCommands(uow shared.UnitOfWork, queueSvc queue.Service, logger *slog.Logger) UserCommands {
	return &userCommandsImpl{uow: uow, queue: queueSvc, logger: logger}
}

func (u *userCommandsImpl) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateUserInput) (*job.Job, error) {
	if !actor.CanActOn(id) {
		return nil, ErrForbidden
	}
	if in.Role != nil && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	payload := queue.UserUpdatePayload{
		ID:             id,
		Username:       in.Username,
		ProfilePicture: in.ProfilePicture,
		Role:           in.Role,
	}
	if in.Email != nil {
		email, err := user.NewEmail(*in.Email)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		v := email.Value()
		payload.Email = &v
	}
	if in.Password != nil {
		pw, err := user.NewPassword(*in.Password)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		hash, err := password.Hash(pw.Value())
		if err != nil {
			return nil, errs.Wrap(err, "failed to hash password")
		}
		payload.PasswordHash = &hash
	}
	if err := payload.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err := u.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, id); err != nil {
			return err
		}
		if payload.Email == nil {
			return nil
		}
		email, _ := user.NewEmail(*payload.Email)
		other, err := tx.Users().FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID() != id:
			return ErrEmailTaken
		case err != nil && !errs.Is(err, errs.ErrNotFound):
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw, err := encodePayload(payload, job.TypeUserUpdate.String())
	if err != nil {
		return nil, err
	}
	j, err := u.queue.Enqueue(ctx, queue.EnqueueRequest{
		Type:     job.TypeUserUpdate,
		Payload:  raw,
		Priority: PriorityDefault,
		DedupKey: in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("user update queued", "job_id", j.ID(), "user_id", id, "actor_id", actor.ID)
	return j, nil
}
