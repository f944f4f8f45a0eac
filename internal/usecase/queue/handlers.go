package queue

import (
	"context"
	"time"

	"gin-jobqueue/internal/domain/job"
	"gin-jobqueue/internal/domain/movie"
	"gin-jobqueue/internal/domain/user"
	"gin-jobqueue/internal/pkg/clock"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var errMissingID = errs.New("id is required")

// Update payloads carry only the fields to change; nil means "keep".
var patchOption = copier.Option{IgnoreEmpty: true}

type UserInsertPayload struct {
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"passwordHash"`
	Role           string     `json:"role,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	JoinDate       *time.Time `json:"joinDate,omitempty"`
}

func (p *UserInsertPayload) props() user.Props {
	props := user.Props{
		Username:       p.Username,
		Email:          p.Email,
		PasswordHash:   p.PasswordHash,
		Role:           user.Role(p.Role),
		ProfilePicture: p.ProfilePicture,
	}
	if p.JoinDate != nil {
		props.JoinDate = *p.JoinDate
	}
	return props
}

func (p *UserInsertPayload) Validate() error {
	_, err := user.NewUser(p.props(), time.Now())
	return err
}

type UserUpdatePayload struct {
	ID             uuid.UUID  `json:"id" copier:"-"`
	Username       *string    `json:"username,omitempty"`
	Email          *string    `json:"email,omitempty"`
	PasswordHash   *string    `json:"passwordHash,omitempty"`
	Role           *string    `json:"role,omitempty"`
	ProfilePicture *string    `json:"profilePicture,omitempty"`
	JoinDate       *time.Time `json:"joinDate,omitempty"`
}

func (p *UserUpdatePayload) Validate() error {
	if p.ID == uuid.Nil {
		return errMissingID
	}
	if p.Username != nil {
		if _, err := user.NewUsername(*p.Username); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if _, err := user.NewEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Role != nil {
		if _, err := user.NewRole(*p.Role); err != nil {
			return err
		}
	}
	return nil
}

type MovieInsertPayload struct {
	Title       string   `json:"title"`
	Genre       []string `json:"genre,omitempty"`
	ReleaseYear *int32   `json:"releaseYear,omitempty"`
	Director    string   `json:"director,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Synopsis    string   `json:"synopsis,omitempty"`
	PosterURL   string   `json:"posterUrl,omitempty"`
}

func (p *MovieInsertPayload) props() movie.Props {
	return movie.Props{
		Title:       p.Title,
		Genre:       p.Genre,
		ReleaseYear: p.ReleaseYear,
		Director:    p.Director,
		Cast:        p.Cast,
		Synopsis:    p.Synopsis,
		PosterURL:   p.PosterURL,
	}
}

func (p *MovieInsertPayload) Validate() error {
	_, err := movie.NewMovie(p.props(), time.Now())
	return err
}

// A nil slice keeps the current value; an empty one clears it.
type MovieUpdatePayload struct {
	ID            uuid.UUID `json:"id" copier:"-"`
	Title         *string   `json:"title,omitempty"`
	Genre         []string  `json:"genre"`
	ReleaseYear   *int32    `json:"releaseYear,omitempty"`
	Director      *string   `json:"director,omitempty"`
	Cast          []string  `json:"cast"`
	Synopsis      *string   `json:"synopsis,omitempty"`
	PosterURL     *string   `json:"posterUrl,omitempty"`
	AverageRating *float64  `json:"averageRating,omitempty"`
}

// Validate checks only the fields being set; the merged movie is validated again at apply time.
func (p *MovieUpdatePayload) Validate() error {
	if p.ID == uuid.Nil {
		return errMissingID
	}
	if p.Title != nil {
		if err := movie.ValidateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.ReleaseYear != nil {
		if err := movie.ValidateReleaseYear(*p.ReleaseYear, time.Now()); err != nil {
			return err
		}
	}
	if p.AverageRating != nil {
		if err := movie.ValidateRating(*p.AverageRating); err != nil {
			return err
		}
	}
	return nil
}

// NewDefaultRegistry registers the handler for every declared job type.
func NewDefaultRegistry(clk clock.Clock) *Registry {
	r := NewRegistry()
	Register(r, job.TypeUserInsert, insertUser(clk))
	Register(r, job.TypeUserUpdate, updateUser(clk))
	Register(r, job.TypeMovieInsert, insertMovie(clk))
	Register(r, job.TypeMovieUpdate, updateMovie(clk))
	r.MustValidate()
	return r
}

// Not idempotent: a replay after a lost commit acknowledgement fails on the
// unique email and is retried until exhausted.
func insertUser(clk clock.Clock) HandlerFunc[UserInsertPayload] {
	return func(ctx context.Context, tx shared.Tx, p UserInsertPayload) error {
		u, err := user.NewUser(p.props(), clk.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.Users().Create(ctx, u)
	}
}

func updateUser(clk clock.Clock) HandlerFunc[UserUpdatePayload] {
	return func(ctx context.Context, tx shared.Tx, p UserUpdatePayload) error {
		u, err := tx.Users().FindByID(ctx, p.ID)
		if err != nil {
			return err
		}

		props := u.Props()
		if err := copier.CopyWithOption(&props, &p, patchOption); err != nil {
			return errs.Wrap(err, "failed to merge user patch")
		}
		if err := u.Update(props, clk.Now()); err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.Users().Update(ctx, u)
	}
}

func insertMovie(clk clock.Clock) HandlerFunc[MovieInsertPayload] {
	return func(ctx context.Context, tx shared.Tx, p MovieInsertPayload) error {
		m, err := movie.NewMovie(p.props(), clk.Now())
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.Movies().Create(ctx, m)
	}
}

func updateMovie(clk clock.Clock) HandlerFunc[MovieUpdatePayload] {
	return func(ctx context.Context, tx shared.Tx, p MovieUpdatePayload) error {
		m, err := tx.Movies().FindByID(ctx, p.ID)
		if err != nil {
			return err
		}

		props := m.Props()
		if err := copier.CopyWithOption(&props, &p, patchOption); err != nil {
			return errs.Wrap(err, "failed to merge movie patch")
		}
		if err := m.Update(props, clk.Now()); err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.Movies().Update(ctx, m)
	}
}
