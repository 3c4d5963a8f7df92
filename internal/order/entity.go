// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

type Order struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	ShippingAddress string          `db:"shipping_address"`
	ShippingCity    string          `db:"shipping_city"`
	ShippingZipCode string          `db:"shipping_zip_code"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	IsPaid          bool            `db:"is_paid"`
	PaidAt          *time.Time      `db:"paid_at"`
	Status          string          `db:"order_status"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`

	Items []Item `db:"-"`
}

// CanTransitionTo reports whether fulfillment may move from the order's
// current status to next. Delivered and Cancelled are terminal.
func (o *Order) CanTransitionTo(next string) bool {
	for _, s := range transitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// Subtotal sums price times quantity over the line items.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}

// Item is a line item. Name, Price and Image are copied from the product
// at purchase time and do not follow later edits.
type Item struct {
	ID        string          `db:"id"`
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Image     string          `db:"image"`
	Qty       int             `db:"qty"`
	Position  int             `db:"position"`
}

// StockedProduct is the locked view of a product row used while placing
// an order.
type StockedProduct struct {
	ID     string          `db:"id"`
	Name   string          `db:"name"`
	Price  decimal.Decimal `db:"price"`
	Stock  int             `db:"stock"`
	Photos pq.StringArray  `db:"photos"`
}

func (p *StockedProduct) FirstPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}
