package repository

import (
	"context"
	"time"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByIntentID(ctx context.Context, intentID string) (*models.Payment, error)
	MarkSucceeded(ctx context.Context, intentID string) error
	MarkFailed(ctx context.Context, intentID string) error
}

type gormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &gormPaymentRepository{db: db}
}

func (r *gormPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *gormPaymentRepository) FindByIntentID(ctx context.Context, intentID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("stripe_payment_id = ?", intentID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *gormPaymentRepository) MarkSucceeded(ctx context.Context, intentID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("stripe_payment_id = ?", intentID).
		Updates(map[string]interface{}{
			"status":       models.PaymentStatusSucceeded,
			"succeeded_at": &now,
		}).Error
}

func (r *gormPaymentRepository) MarkFailed(ctx context.Context, intentID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("stripe_payment_id = ?", intentID).
		Updates(map[string]interface{}{
			"status":    models.PaymentStatusFailed,
			"failed_at": &now,
		}).Error
}
