// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=200"`
	Description string          `json:"description" validate:"required,max=5000"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"    validate:"required,max=100"`
	Stock       int             `json:"stock"       validate:"gte=0"`
	Tags        []string        `json:"tags"        validate:"max=20,dive,max=50"`
	Photos      []string        `json:"photos"      validate:"max=10,dive,required,max=2048"`
}

// UpdateProductRequest is an explicit patch. A nil field is left alone; a
// present field replaces the stored value, including zero values such as a
// stock of 0 or an empty tag list.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"        validate:"omitempty,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"    validate:"omitempty,max=100"`
	Stock       *int             `json:"stock,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"        validate:"omitempty,max=20,dive,max=50"`
	Photos      *[]string        `json:"photos,omitempty"      validate:"omitempty,max=10,dive,required,max=2048"`
	Status      *string          `json:"status,omitempty"`
}

type ProductResponse struct {
	ID          string          `json:"id"`
	ArtisanID   string          `json:"artisan_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Tags        []string        `json:"tags"`
	Photos      []string        `json:"photos"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		ArtisanID:   p.ArtisanID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Tags:        nonNil(p.Tags),
		Photos:      nonNil(p.Photos),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
