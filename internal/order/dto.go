// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	Product string `json:"product" validate:"required"`
	Qty     int    `json:"qty"     validate:"min=1"`
}

type ShippingAddress struct {
	Address string `json:"address"  validate:"max=300"`
	City    string `json:"city"     validate:"max=100"`
	ZipCode string `json:"zip_code" validate:"max=20"`
}

// PlaceOrderRequest carries the cart. A zero TotalPrice is computed from
// the product prices at purchase time.
type PlaceOrderRequest struct {
	OrderItems      []ItemRequest   `json:"order_items"      validate:"dive"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

type ItemResponse struct {
	Product string          `json:"product"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Image   string          `json:"image"`
	Qty     int             `json:"qty"`
}

type OrderResponse struct {
	ID              string          `json:"id"`
	User            string          `json:"user"`
	OrderItems      []ItemResponse  `json:"order_items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	OrderStatus     string          `json:"order_status"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ToOrderResponse(o *Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse{
			Product: it.ProductID,
			Name:    it.Name,
			Price:   it.Price,
			Image:   it.Image,
			Qty:     it.Qty,
		})
	}

	return OrderResponse{
		ID:         o.ID,
		User:       o.UserID,
		OrderItems: items,
		ShippingAddress: ShippingAddress{
			Address: o.ShippingAddress,
			City:    o.ShippingCity,
			ZipCode: o.ShippingZipCode,
		},
		TotalPrice:  o.TotalPrice,
		IsPaid:      o.IsPaid,
		PaidAt:      o.PaidAt,
		OrderStatus: o.Status,
		CreatedAt:   o.CreatedAt,
	}
}

func ToOrderResponseList(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out
}
