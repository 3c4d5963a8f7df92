// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type Contact struct {
	Phone   string `json:"phone"   validate:"max=40"`
	Address string `json:"address" validate:"max=255"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type RegisterRequest struct {
	Name     string   `json:"name"     validate:"required,min=1,max=100"`
	Email    string   `json:"email"    validate:"required,email,max=255"`
	Password string   `json:"password" validate:"required,min=8,max=128"`
	Role     string   `json:"role"     validate:"omitempty,oneof=Buyer Artisan"`
	Contact  *Contact `json:"contact"  validate:"omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profile_image"`
	Contact      Contact   `json:"contact"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
