package models

import "time"

// CheckoutStep is the current state of a checkout session's state machine.
type CheckoutStep string

const (
	StepAddressEntry      CheckoutStep = "ADDRESS_ENTRY"
	StepShippingSelection CheckoutStep = "SHIPPING_SELECTION"
	StepPaymentPending    CheckoutStep = "PAYMENT_PENDING"
	StepPaymentConfirming CheckoutStep = "PAYMENT_CONFIRMING"
	StepOrderConfirmed    CheckoutStep = "ORDER_CONFIRMED"
)

// CheckoutSession composes everything one checkout attempt accumulates. It is
// held in memory only and discarded on confirmation or abandonment; the cart
// snapshot is taken when payment begins and is not re-validated against the
// live cart before charging.
type CheckoutSession struct {
	UserID            string           `json:"user_id"`
	Step              CheckoutStep     `json:"step"`
	Address           *ShippingAddress `json:"address,omitempty"`
	Options           []ShippingOption `json:"options"`
	SelectedOption    *ShippingOption  `json:"selected_option,omitempty"`
	Snapshot          []CartItem       `json:"snapshot,omitempty"`
	PaymentIntentID   string           `json:"payment_intent_id,omitempty"`
	ClientSecret      string           `json:"client_secret,omitempty"`
	LastDeclineReason string           `json:"last_decline_reason,omitempty"`
	LastError         string           `json:"last_error,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// OrderConfirmedEvent is published (best effort) after an order is created.
type OrderConfirmedEvent struct {
	Event           string    `json:"event"` // "order.confirmed"
	OrderID         string    `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	UserID          string    `json:"user_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Timestamp       time.Time `json:"timestamp"`
}
