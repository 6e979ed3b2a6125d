package models

import "time"

// CartItem is one product-quantity line in a user's cart. Stock mirrors the
// product table at the time the line was last written and is re-checked on
// every quantity mutation; the stored copy is display-only.
type CartItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Name      string   `json:"name"`
	UnitPrice float64  `json:"unit_price"`
	Stock     int      `json:"stock"`
	Images    []string `json:"images"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItemCount folds the current items; it is recomputed on every call so
// it can never drift from the list after a mutation.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal folds unit price times quantity over the current items.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
