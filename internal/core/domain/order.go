package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Order struct {
	ID             string        `json:"id"`
	RequestID      string        `json:"request_id"`
	UserID         string        `json:"user_id"`
	Currency       Currency      `json:"currency"`
	Lines          []OrderLine   `json:"lines"`
	Totals         PricingResult `json:"totals"`
	Status         OrderStatus   `json:"status"`
	IdempotencyKey string        `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// CartLines returns the order lines in cart storage form, used to restore a
// cart when the order cannot be persisted.
func (o Order) CartLines() []CartLine {
	lines := make([]CartLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return lines
}
