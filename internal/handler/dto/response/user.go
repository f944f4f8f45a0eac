package response

import (
	"time"

	"gin-jobqueue/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture"`
	JoinDate       time.Time `json:"joinDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromUserView(v *queries.UserView) UserResponse {
	return UserResponse{
		ID:             v.ID,
		Username:       v.Username,
		Email:          v.Email,
		Role:           v.Role,
		ProfilePicture: v.ProfilePicture,
		JoinDate:       v.JoinDate,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

type PaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	Limit       int   `json:"limit"`
}

type UserListResponse struct {
	Users      []UserResponse     `json:"users"`
	Pagination PaginationResponse `json:"pagination"`
}

func FromUserPage(p *queries.UserPage) UserListResponse {
	users := make([]UserResponse, 0, len(p.Users))
	for i := range p.Users {
		users = append(users, FromUserView(&p.Users[i]))
	}
	return UserListResponse{
		Users: users,
		Pagination: PaginationResponse{
			CurrentPage: p.Pagination.CurrentPage,
			TotalPages:  p.Pagination.TotalPages,
			TotalUsers:  p.Pagination.Total,
			Limit:       p.Pagination.Limit,
		},
	}
}
