package response

import (
	"gin-jobqueue/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

func FromLoginResult(r *commands.LoginResult) LoginResponse {
	return LoginResponse{
		Token: r.AccessToken,
		User: LoginUser{
			ID:       r.UserID,
			Username: r.Username,
			Email:    r.Email,
			Role:     r.Role.String(),
		},
	}
}
