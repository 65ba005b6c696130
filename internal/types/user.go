package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserAuth represents the core user entity in the domain.
type UserAuth struct {
	ID        string    `json:"id" example:"d290f1ee-6c54-4b01-90e6-d701748f0851"` // Unique identifier (UUID).
	Username  string    `json:"username" example:"johndoe"`                        // Optional unique username.
	Email     string    `json:"email" example:"john.doe@example.com"`              // Unique email address used for login.
	Password  string    `json:"-"`                                                 // Hashed password (never exposed).
	Provider  string    `json:"provider,omitempty"`                                // OAuth provider, empty for password accounts.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Claims is the JWT access-token payload.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}
