// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/recraft/internal/cache"
	"github.com/carterperez-dev/recraft/internal/core"
)

var (
	errNoItems       = core.BadRequestError("No order items")
	errBadQuantity   = core.BadRequestError("Quantity must be at least 1")
	errNoShipping    = core.BadRequestError("Shipping address, city and zip code are required")
	errNegativeTotal = core.BadRequestError("Total price must not be negative")
)

type Service struct {
	repo  Repository
	cache *cache.Cache
	now   func() time.Time
}

func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c, now: time.Now}
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Place validates stock for every item in submission order, decrements it
// and persists the order in one transaction. Any failure leaves stock as
// it was.
func (s *Service) Place(
	ctx context.Context,
	userID string,
	req PlaceOrderRequest,
) (*Order, error) {
	ctx, span := core.StartSpan(ctx, "order.Place",
		attribute.String("user.id", userID),
		attribute.Int("order.items", len(req.OrderItems)),
	)
	defer span.End()

	if err := validate(req); err != nil {
		fail(ctx, "invalid_request", err)
		return nil, err
	}

	now := s.now().UTC()
	o := &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress.Address),
		ShippingCity:    strings.TrimSpace(req.ShippingAddress.City),
		ShippingZipCode: strings.TrimSpace(req.ShippingAddress.ZipCode),
		IsPaid:          true,
		PaidAt:          &now,
		Status:          StatusPending,
	}

	units := 0
	err := s.repo.RunInTx(ctx, func(tx TxRepository) error {
		o.Items = o.Items[:0]
		units = 0

		for i, item := range req.OrderItems {
			p, err := tx.LockProduct(ctx, item.Product)
			if errors.Is(err, core.ErrNotFound) {
				return productNotFound(item.Product)
			}
			if err != nil {
				return err
			}

			if item.Qty > p.Stock {
				return insufficientStock(p)
			}

			if err := tx.DecrementStock(ctx, p.ID, item.Qty); err != nil {
				if errors.Is(err, core.ErrInvalidInput) {
					return insufficientStock(p)
				}
				return err
			}

			units += item.Qty
			o.Items = append(o.Items, Item{
				ID:        uuid.New().String(),
				OrderID:   o.ID,
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Image:     p.FirstPhoto(),
				Qty:       item.Qty,
				Position:  i,
			})
		}

		o.TotalPrice = req.TotalPrice
		if o.TotalPrice.IsZero() {
			o.TotalPrice = o.Subtotal()
		}

		return tx.InsertOrder(ctx, o)
	})
	if err != nil {
		fail(ctx, reason(err), err)
		return nil, err
	}

	core.OrdersPlaced.Inc()
	core.StockDecremented.Add(float64(units))
	core.AddSpanEvent(ctx, "order.placed",
		attribute.String("order.id", o.ID),
		attribute.String("order.total", o.TotalPrice.StringFixed(2)),
	)
	s.cache.Invalidate(ctx, cache.PublishedProductsKey)

	return o, nil
}

func validate(req PlaceOrderRequest) error {
	if len(req.OrderItems) == 0 {
		return errNoItems
	}
	for _, item := range req.OrderItems {
		if item.Qty < 1 {
			return errBadQuantity
		}
	}

	ship := req.ShippingAddress
	if strings.TrimSpace(ship.Address) == "" ||
		strings.TrimSpace(ship.City) == "" ||
		strings.TrimSpace(ship.ZipCode) == "" {
		return errNoShipping
	}

	if req.TotalPrice.IsNegative() {
		return errNegativeTotal
	}
	return nil
}

func productNotFound(id string) error {
	return core.NewAppError(
		core.ErrNotFound,
		fmt.Sprintf("Product with id %s not found.", id),
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func insufficientStock(p *StockedProduct) error {
	return core.NewAppError(
		core.ErrInvalidInput,
		fmt.Sprintf("Not enough stock for %s. Only %d available.", p.Name, p.Stock),
		http.StatusBadRequest,
		"INSUFFICIENT_STOCK",
	)
}

func reason(err error) string {
	appErr, ok := core.AsAppError(err)
	switch {
	case !ok:
		return "store"
	case appErr.Code == "INSUFFICIENT_STOCK":
		return "insufficient_stock"
	case appErr.StatusCode == http.StatusNotFound:
		return "product_not_found"
	default:
		return "invalid_request"
	}
}

func fail(ctx context.Context, why string, err error) {
	core.OrderFailures.WithLabelValues(why).Inc()
	if why == "store" {
		core.SetSpanError(ctx, err)
		slog.ErrorContext(ctx, "order placement failed", "error", err)
	}
}
