package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusConfirmed = "confirmed"
	OrderStatusCanceled  = "canceled"
)

// Order is created exactly once per successful checkout session. The unique
// index on PaymentIntentID is what makes confirmation idempotent: a retried
// confirm for the same intent finds this row instead of inserting a second one.
type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber     string    `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          string    `gorm:"type:varchar(128);not null;index" json:"user_id"`
	PaymentIntentID string    `gorm:"uniqueIndex;not null" json:"payment_intent_id"`
	Amount          int64     `gorm:"not null" json:"amount"` // smallest currency unit
	Currency        string    `gorm:"type:varchar(10);not null" json:"currency"`
	Status          string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`

	ShippingCarrier  string  `gorm:"type:varchar(64)" json:"shipping_carrier"`
	ShippingPrice    float64 `json:"shipping_price"`
	DeliveryEstimate string  `gorm:"type:varchar(128)" json:"delivery_estimate"`
	// Address stored as a JSON string, copied verbatim from the session
	AddressJSON string `gorm:"type:jsonb" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a snapshot of one cart line at time of purchase, decoupled
// from the live cart.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID string    `gorm:"type:varchar(128);not null" json:"product_id"`
	Name      string    `gorm:"type:varchar(256)" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
}
