package auth

import (
	"time"

	"github.com/cryptogear/backend/pkg/db/models"
)

// UserDTO is the wire shape of a shopper account. The password hash
// never leaves the service.
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenDTO is the authentication envelope returned by register and login.
type TokenDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

// NewUserDTO maps a user model onto its wire shape.
func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
