// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `db:"id"`
	ArtisanID   string          `db:"artisan_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Category    string          `db:"category"`
	Stock       int             `db:"stock"`
	Tags        pq.StringArray  `db:"tags"`
	Photos      pq.StringArray  `db:"photos"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (p *Product) OwnedBy(userID string) bool {
	return p.ArtisanID == userID
}

func (p *Product) IsPublished() bool {
	return p.Status == StatusPublished
}

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)
