package repository

import (
	"context"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository reads the product table, the stock authority consulted
// before any cart quantity mutation is accepted.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
