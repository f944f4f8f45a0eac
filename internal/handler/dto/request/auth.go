package request

import "gin-jobqueue/internal/usecase/commands"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (r RegisterRequest) ToInput(idempotencyKey string) commands.RegisterInput {
	return commands.RegisterInput{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		IdempotencyKey: idempotencyKey,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
