// AngelaMos | 2026
// dto.go

package post

import (
	"time"
)

type CreatePostRequest struct {
	Title         string   `json:"title"          validate:"max=200"`
	Description   string   `json:"description"    validate:"max=5000"`
	MaterialsUsed []string `json:"materials_used" validate:"max=30,dive,max=80"`
	Photos        []string `json:"photos"         validate:"max=10,dive,required,max=2048"`
}

// UpdatePostRequest is an explicit patch; nil fields are left untouched.
type UpdatePostRequest struct {
	Title         *string   `json:"title,omitempty"          validate:"omitempty,max=200"`
	Description   *string   `json:"description,omitempty"    validate:"omitempty,max=5000"`
	MaterialsUsed *[]string `json:"materials_used,omitempty" validate:"omitempty,max=30,dive,max=80"`
	Photos        *[]string `json:"photos,omitempty"         validate:"omitempty,max=10,dive,required,max=2048"`
	Status        *string   `json:"status,omitempty"`
}

type Author struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	Role         string `json:"role"`
}

type PostResponse struct {
	ID            string    `json:"id"`
	User          Author    `json:"user"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	MaterialsUsed []string  `json:"materials_used"`
	Photos        []string  `json:"photos"`
	Status        string    `json:"status"`
	Likes         []string  `json:"likes"`
	LikeCount     int       `json:"like_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type LikeResponse struct {
	LikeCount int `json:"like_count"`
}

func ToPostResponse(p *Post) PostResponse {
	likes := orEmpty(p.Likes)
	return PostResponse{
		ID: p.ID,
		User: Author{
			ID:           p.UserID,
			Name:         p.AuthorName,
			ProfileImage: p.AuthorImage,
			Role:         p.AuthorRole,
		},
		Title:         p.Title,
		Description:   p.Description,
		MaterialsUsed: orEmpty(p.MaterialsUsed),
		Photos:        orEmpty(p.Photos),
		Status:        p.Status,
		Likes:         likes,
		LikeCount:     len(likes),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToPostResponseList(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, ToPostResponse(&posts[i]))
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
