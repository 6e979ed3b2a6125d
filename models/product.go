package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is the stock authority consulted on cart quantity mutations.
// Catalog management itself lives in the product service; this table is the
// read model the checkout core validates against.
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(256);not null" json:"name"`
	Price      float64   `gorm:"not null" json:"price"`
	Stock      int       `gorm:"not null;default:0" json:"stock"`
	ImagesJSON string    `gorm:"type:jsonb" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
