// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	ProfileImage string    `db:"profile_image"`
	Phone        string    `db:"phone"`
	Address      string    `db:"address"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsArtisan() bool {
	return u.Role == RoleArtisan
}

const (
	RoleBuyer   = "Buyer"
	RoleArtisan = "Artisan"
)
