package request

import "gin-jobqueue/internal/usecase/commands"

type UpdateUserRequest struct {
	Username       *string `json:"username,omitempty" binding:"omitempty,min=3,max=30"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Password       *string `json:"password,omitempty" binding:"omitempty,min=6"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Role           *string `json:"role,omitempty" binding:"omitempty,oneof=user admin"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil &&
		r.ProfilePicture == nil && r.Role == nil
}

func (r UpdateUserRequest) ToInput(idempotencyKey string) commands.UpdateUserInput {
	return commands.UpdateUserInput{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		ProfilePicture: r.ProfilePicture,
		Role:           r.Role,
		IdempotencyKey: idempotencyKey,
	}
}

const DefaultUserPageSize = 20

type ListUsersQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
