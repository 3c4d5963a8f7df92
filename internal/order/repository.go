// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/carterperez-dev/recraft/internal/core"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// RunInTx commits when fn returns nil and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository is the set of statements that run inside the placement
// transaction.
type TxRepository interface {
	LockProduct(ctx context.Context, id string) (*StockedProduct, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	InsertOrder(ctx context.Context, o *Order) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RunInTx(
	ctx context.Context,
	fn func(tx TxRepository) error,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&txRepository{db: tx})
	})
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	query := `
		SELECT id, user_id, shipping_address, shipping_city, shipping_zip_code,
		       total_price, is_paid, paid_at, order_status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	var items []Item
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, order_id, product_id, name, price, image, qty, position
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	for _, it := range items {
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}

	return orders, nil
}

type txRepository struct {
	db core.DBTX
}

func (t *txRepository) LockProduct(ctx context.Context, id string) (*StockedProduct, error) {
	if !core.ValidID(id) {
		return nil, fmt.Errorf("lock product: %w", core.ErrNotFound)
	}

	query := `
		SELECT id, name, price, stock, photos
		FROM products
		WHERE id = $1
		FOR UPDATE`

	var p StockedProduct
	err := t.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock product: %w", err)
	}

	return &p, nil
}

func (t *txRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2`

	result, err := t.db.ExecContext(ctx, query, id, qty)
	if err != nil {
		if core.IsCheckViolation(err) {
			return fmt.Errorf("decrement stock: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("decrement stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("decrement stock: %w", core.ErrInvalidInput)
	}

	return nil
}

func (t *txRepository) InsertOrder(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (id, user_id, shipping_address, shipping_city,
		                    shipping_zip_code, total_price, is_paid, paid_at,
		                    order_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := t.db.QueryRowxContext(ctx, query,
		o.ID,
		o.UserID,
		o.ShippingAddress,
		o.ShippingCity,
		o.ShippingZipCode,
		o.TotalPrice,
		o.IsPaid,
		o.PaidAt,
		o.Status,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, price, image,
		                         qty, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, it := range o.Items {
		_, err := t.db.ExecContext(ctx, itemQuery,
			it.ID,
			o.ID,
			it.ProductID,
			it.Name,
			it.Price,
			it.Image,
			it.Qty,
			it.Position,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}
