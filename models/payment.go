package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Payment is one gateway authorization scoped to a checkout attempt. The row
// is written at intent creation and carries the cart snapshot, address and
// shipping choice, so the confirm step can materialize the order from the
// intent id alone. StripePaymentID has a unique index; one checkout session
// can never persist two rows for the same intent, whatever the client retries.
type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          string    `gorm:"type:varchar(128);index;not null" json:"user_id"`
	Amount          int64     `gorm:"not null" json:"amount"` // smallest currency unit
	Currency        string    `gorm:"type:varchar(10);not null" json:"currency"`
	Status          string    `gorm:"type:varchar(20);not null" json:"status"`
	StripePaymentID *string   `gorm:"uniqueIndex" json:"stripe_payment_id,omitempty"`

	// Checkout context captured at intent creation
	ItemsJSON        string  `gorm:"type:jsonb" json:"-"`
	AddressJSON      string  `gorm:"type:jsonb" json:"-"`
	ShippingCarrier  string  `gorm:"type:varchar(64)" json:"shipping_carrier"`
	ShippingPrice    float64 `json:"shipping_price"`
	DeliveryEstimate string  `gorm:"type:varchar(128)" json:"delivery_estimate"`

	SucceededAt *time.Time
	FailedAt    *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
