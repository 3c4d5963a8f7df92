// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type ContactPatch struct {
	Phone   *string `json:"phone,omitempty"   validate:"omitempty,max=40"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// UpdateProfileRequest is a patch: omitted fields keep their stored value.
// Email is not patchable.
type UpdateProfileRequest struct {
	Name         *string       `json:"name,omitempty"          validate:"omitempty,min=1,max=100"`
	ProfileImage *string       `json:"profile_image,omitempty" validate:"omitempty,max=2048"`
	Contact      *ContactPatch `json:"contact,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProfileResponse is what the owner sees of their own account.
type ProfileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profile_image"`
	Contact      Contact   `json:"contact"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicProfile omits credentials and the email address.
type PublicProfile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profile_image"`
	Contact      *Contact  `json:"contact,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ArtisanListResponse struct {
	Artisans []PublicProfile `json:"artisans"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		Contact:      Contact{Phone: u.Phone, Address: u.Address},
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ToPublicProfile exposes contact details for artisans only.
func ToPublicProfile(u *User) PublicProfile {
	p := PublicProfile{
		ID:           u.ID,
		Name:         u.Name,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
	if u.IsArtisan() {
		p.Contact = &Contact{Phone: u.Phone, Address: u.Address}
	}
	return p
}

func ToPublicProfileList(users []User) []PublicProfile {
	out := make([]PublicProfile, 0, len(users))
	for i := range users {
		out = append(out, ToPublicProfile(&users[i]))
	}
	return out
}
