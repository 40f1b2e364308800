package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/policy"
)

type RegisterDTO struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Password2 string      `json:"password2"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      policy.Role `json:"role"`
}

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Role      policy.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
