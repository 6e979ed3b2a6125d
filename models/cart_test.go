package models_test

import (
	"testing"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"github.com/stretchr/testify/assert"
)

func TestTotals_FoldOverItems(t *testing.T) {
	cart := &models.Cart{
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 199.99},
			{ProductID: "p2", Quantity: 1, UnitPrice: 29.99},
		},
	}

	assert.Equal(t, 3, cart.TotalItemCount())
	assert.InDelta(t, 429.97, cart.Subtotal(), 0.0001)
}

func TestTotals_EmptyCart(t *testing.T) {
	cart := &models.Cart{UserID: "user-1", Items: []models.CartItem{}}

	assert.Equal(t, 0, cart.TotalItemCount())
	assert.Equal(t, 0.0, cart.Subtotal())
}

func TestTotals_RecomputedAfterMutation(t *testing.T) {
	cart := &models.Cart{
		UserID: "user-1",
		Items: []models.CartItem{
			{ProductID: "p1", Quantity: 1, UnitPrice: 10.00},
		},
	}
	assert.Equal(t, 1, cart.TotalItemCount())

	cart.Items[0].Quantity = 4
	assert.Equal(t, 4, cart.TotalItemCount())
	assert.InDelta(t, 40.00, cart.Subtotal(), 0.0001)
}
