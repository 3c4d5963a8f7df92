// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/recraft/internal/cache"
	"github.com/carterperez-dev/recraft/internal/core"
)

var (
	errNoPhoto       = core.BadRequestError("No image URL provided")
	errNegativePrice = core.BadRequestError("Price must not be negative")
	errNegativeStock = core.BadRequestError("Stock must not be negative")
)

type Service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

func (s *Service) ListPublished(ctx context.Context) ([]ProductResponse, error) {
	return cache.Remember(ctx, s.cache, cache.PublishedProductsKey,
		func(ctx context.Context) ([]ProductResponse, error) {
			products, err := s.repo.ListPublished(ctx)
			if err != nil {
				return nil, err
			}
			return ToProductResponseList(products), nil
		},
	)
}

func (s *Service) ListMine(ctx context.Context, artisanID string) ([]Product, error) {
	return s.repo.ListByArtisan(ctx, artisanID)
}

// GetByID returns the product regardless of status, so drafts are
// reachable by anyone holding the id.
func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) GetMine(ctx context.Context, ownerID, id string) (*Product, error) {
	return s.owned(ctx, ownerID, id, "Not authorized to access this product")
}

func (s *Service) Create(
	ctx context.Context,
	artisanID string,
	req CreateProductRequest,
) (*Product, error) {
	ctx, span := core.StartSpan(ctx, "product.Create",
		attribute.String("artisan.id", artisanID),
	)
	defer span.End()

	if len(req.Photos) == 0 {
		return nil, errNoPhoto
	}
	if req.Price.IsNegative() {
		return nil, errNegativePrice
	}
	if req.Stock < 0 {
		return nil, errNegativeStock
	}

	p := &Product{
		ID:          uuid.New().String(),
		ArtisanID:   artisanID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    strings.TrimSpace(req.Category),
		Stock:       req.Stock,
		Tags:        nonNil(req.Tags),
		Photos:      req.Photos,
		Status:      StatusDraft,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Update(
	ctx context.Context,
	ownerID, id string,
	req UpdateProductRequest,
) (*Product, error) {
	ctx, span := core.StartSpan(ctx, "product.Update",
		attribute.String("product.id", id),
	)
	defer span.End()

	p, err := s.owned(ctx, ownerID, id, "User not authorized to update this product")
	if err != nil {
		return nil, err
	}

	if err := applyPatch(p, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p, req.Stock); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

// Publish is idempotent: publishing a published product succeeds.
func (s *Service) Publish(ctx context.Context, ownerID, id string) (*Product, error) {
	if _, err := s.owned(ctx, ownerID, id, "Not authorized to publish this product"); err != nil {
		return nil, err
	}

	p, err := s.repo.SetStatus(ctx, id, StatusPublished)
	if err != nil {
		return nil, notFound(err)
	}

	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id, "User not authorized to delete this product"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) owned(
	ctx context.Context,
	ownerID, id, denied string,
) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.OwnedBy(ownerID) {
		return nil, core.UnauthorizedError(denied)
	}
	return p, nil
}

func (s *Service) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, cache.PublishedProductsKey)
}

func applyPatch(p *Product, req UpdateProductRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return core.BadRequestError("Name must not be empty")
		}
		p.Name = name
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return core.BadRequestError("Description must not be empty")
		}
		p.Description = *req.Description
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return core.BadRequestError("Category must not be empty")
		}
		p.Category = category
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return errNegativePrice
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return errNegativeStock
		}
		p.Stock = *req.Stock
	}
	if req.Tags != nil {
		p.Tags = nonNil(*req.Tags)
	}
	if req.Photos != nil {
		if len(*req.Photos) == 0 {
			return errNoPhoto
		}
		p.Photos = *req.Photos
	}
	if req.Status != nil {
		switch *req.Status {
		case StatusDraft, StatusPublished:
			p.Status = *req.Status
		default:
			return core.BadRequestError("Status must be Draft or Published")
		}
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("Product")
	}
	return err
}
