// AngelaMos | 2026
// entity.go

package post

import (
	"time"

	"github.com/lib/pq"
)

// Post is an inspiration post joined with its author and the ids of the
// users who liked it.
type Post struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	MaterialsUsed pq.StringArray `db:"materials_used"`
	Photos        pq.StringArray `db:"photos"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`

	AuthorName  string         `db:"author_name"`
	AuthorImage string         `db:"author_image"`
	AuthorRole  string         `db:"author_role"`
	Likes       pq.StringArray `db:"likes"`
}

func (p *Post) OwnedBy(userID string) bool {
	return p.UserID == userID
}

func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)
