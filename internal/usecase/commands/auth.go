package commands

//go:generate mockgen -source=auth.go -destination=../../testutil/mock/commands/auth_mock.go -package=commandsmock

import (
	"context"
	"log/slog"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/clock"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/pkg/jwt"
	"gin-jobqueue/internal/pkg/password"
	"gin-jobqueue/internal/usecase/queue"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.Mark(errs.New("invalid credentials"), errs.ErrUnauthorized)
	ErrEmailTaken         = errs.Mark(errs.New("user already exists with this email"), errs.ErrConflict)
	ErrTokenGeneration    = errs.New("token generation failed")
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Becomes the job dedup key when set.
	IdempotencyKey string
}

type LoginResult struct {
	UserID      uuid.UUID
	Username    string
	Email       string
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	// Register validates and hashes eagerly, then defers the insert to the queue.
	Register(ctx context.Context, in RegisterInput) (*job.Job, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	queue      queue.Service
	jwtService *jwt.Service
	clock      clock.Clock
	logger     *slog.Logger
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	queueSvc queue.Service,
	jwtService *jwt.Service,
	clk clock.Clock,
	logger *slog.Logger,
) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		queue:      queueSvc,
		jwtService: jwtService,
		clock:      clk,
		logger:     logger,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, in RegisterInput) (*job.Job, error) {
	username, err := user.NewUsername(in.Username)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	email, err := user.NewEmail(in.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	pw, err := user.NewPassword(in.Password)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Users().FindByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if errs.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	hash, err := password.Hash(pw.Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	joinDate := a.clock.Now()
	payload, err := encodePayload(queue.UserInsertPayload{
		Username:     username.Value(),
		Email:        email.Value(),
		PasswordHash: hash,
		Role:         user.RoleUser.String(),
		JoinDate:     &joinDate,
	}, job.TypeUserInsert.String())
	if err != nil {
		return nil, err
	}

	j, err := a.queue.Enqueue(ctx, queue.EnqueueRequest{
		Type:     job.TypeUserInsert,
		Payload:  payload,
		Priority: PriorityUserInsert,
		DedupKey: in.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("user registration queued", "job_id", j.ID(), "email", email.Value())
	return j, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, pw string) (*LoginResult, error) {
	credentials, err := user.NewCredentials(email, pw)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	var found *user.User
	err = a.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByEmail(ctx, credentials.Email())
		if err != nil {
			return err
		}
		found = u
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.Verify(found.PasswordHash(), credentials.Password()); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(found.ID(), found.Role())
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      found.ID(),
		Username:    found.Username().Value(),
		Email:       found.Email().Value(),
		Role:        found.Role(),
		AccessToken: token,
	}, nil
}
