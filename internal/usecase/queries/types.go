package queries

import (
	"time"

	"gin-jobqueue/internal/domain/movie"
	"gin-jobqueue/internal/domain/user"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// UserView never carries the password hash.
type UserView struct {
	ID             uuid.UUID
	Username       string
	Email          string
	Role           string
	ProfilePicture string
	JoinDate       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func newUserView(u *user.User) UserView {
	return UserView{
		ID:             u.ID(),
		Username:       u.Username().Value(),
		Email:          u.Email().Value(),
		Role:           u.Role().String(),
		ProfilePicture: u.ProfilePicture(),
		JoinDate:       u.JoinDate(),
		CreatedAt:      u.CreatedAt(),
		UpdatedAt:      u.UpdatedAt(),
	}
}

type MovieView = movie.Props

type Pagination struct {
	CurrentPage int
	TotalPages  int
	Total       int64
	Limit       int
}

func newPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{CurrentPage: page, TotalPages: pages, Total: total, Limit: limit}
}

type UserPage struct {
	Users      []UserView
	Pagination Pagination
}

type AdminStats struct {
	TotalUsers  int64
	TotalMovies int64
}
