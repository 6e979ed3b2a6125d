package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingAddress is a value object scoped to one checkout session. It has no
// persistent identity; the confirmed order stores a verbatim copy.
type ShippingAddress struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// ShippingOption is a (carrier, zone, price, delivery-time) tuple available
// for a destination city. Immutable once fetched for a session.
type ShippingOption struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Carrier          string    `gorm:"type:varchar(64);not null" json:"carrier"`
	ZoneID           string    `gorm:"type:varchar(64);not null;index" json:"zone_id"`
	DisplayName      string    `gorm:"type:varchar(128);not null" json:"display_name"`
	City             string    `gorm:"type:varchar(128);not null;index" json:"city"`
	Price            float64   `gorm:"not null" json:"price"`
	DeliveryEstimate string    `gorm:"type:varchar(128)" json:"delivery_estimate"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"-"`
}
