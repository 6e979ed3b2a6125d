package repository

import (
	"context"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingOptionRepository resolves the carriers registered for a city.
type ShippingOptionRepository interface {
	FindByCity(ctx context.Context, city string) ([]models.ShippingOption, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ShippingOption, error)
}

type gormShippingOptionRepository struct {
	db *gorm.DB
}

func NewGormShippingOptionRepository(db *gorm.DB) ShippingOptionRepository {
	return &gormShippingOptionRepository{db: db}
}

// FindByCity returns options cheapest first. An empty result is not an error;
// some cities simply have no registered carriers.
func (r *gormShippingOptionRepository) FindByCity(ctx context.Context, city string) ([]models.ShippingOption, error) {
	var options []models.ShippingOption
	if err := r.db.WithContext(ctx).
		Where("city = ?", city).
		Order("price ASC").
		Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *gormShippingOptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ShippingOption, error) {
	var option models.ShippingOption
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}
