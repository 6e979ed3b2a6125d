package repository

import (
	"context"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error)
	FindByIDAndUserID(ctx context.Context, orderID uuid.UUID, userID string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order together with its item snapshot. The unique index
// on payment_intent_id makes a concurrent duplicate insert fail instead of
// producing a second order for one intent.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByPaymentIntentID retrieves the order materialized for a payment intent
func (r *GormOrderRepository) FindByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("payment_intent_id = ?", intentID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDAndUserID retrieves a specific order for a user
func (r *GormOrderRepository) FindByIDAndUserID(ctx context.Context, orderID uuid.UUID, userID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUserID retrieves orders for a specific user with pagination
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("OrderItems").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
