// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/recraft/internal/core"
)

type Repository interface {
	ListPublished(ctx context.Context) ([]Product, error)
	ListByArtisan(ctx context.Context, artisanID string) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product, stock *int) error
	SetStatus(ctx context.Context, id, status string) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const productColumns = `id, artisan_id, name, description, price, category,
		       stock, tags, photos, status, created_at, updated_at`

func (r *repository) ListPublished(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE status = $1
		ORDER BY created_at DESC`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query, StatusPublished); err != nil {
		return nil, fmt.Errorf("list published products: %w", err)
	}

	return products, nil
}

func (r *repository) ListByArtisan(
	ctx context.Context,
	artisanID string,
) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE artisan_id = $1
		ORDER BY created_at DESC`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query, artisanID); err != nil {
		return nil, fmt.Errorf("list artisan products: %w", err)
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	if !core.ValidID(id) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p Product
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (id, artisan_id, name, description, price,
		                      category, stock, tags, photos, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.ArtisanID,
		p.Name,
		p.Description,
		p.Price,
		p.Category,
		p.Stock,
		p.Tags,
		p.Photos,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if core.IsCheckViolation(err) {
			return fmt.Errorf("create product: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

// Update writes the editable columns of p. Stock is only written when
// stock is non-nil; the stored value is scanned back into p either way.
func (r *repository) Update(ctx context.Context, p *Product, stock *int) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5,
		    stock = COALESCE($6, stock), tags = $7, photos = $8, status = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING stock, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Category,
		stock,
		p.Tags,
		p.Photos,
		p.Status,
	).Scan(&p.Stock, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsCheckViolation(err) {
			return fmt.Errorf("update product: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) SetStatus(
	ctx context.Context,
	id, status string,
) (*Product, error) {
	query := `
		UPDATE products
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var p Product
	err := r.db.GetContext(ctx, &p, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("set product status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("set product status: %w", err)
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}
