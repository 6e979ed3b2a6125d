package services

import (
	"context"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/repository"

	"go.uber.org/zap"
)

// ShippingService resolves the carriers available for a destination city.
type ShippingService interface {
	OptionsByCity(ctx context.Context, city string) ([]models.ShippingOption, error)
}

type shippingService struct {
	repo   repository.ShippingOptionRepository
	logger *zap.Logger
}

func NewShippingService(repo repository.ShippingOptionRepository, logger *zap.Logger) ShippingService {
	return &shippingService{repo: repo, logger: logger}
}

// OptionsByCity returns the registered options for a city, cheapest first.
// An empty slice is a valid result and must be rendered as "no options", not
// treated as a failure.
func (s *shippingService) OptionsByCity(ctx context.Context, city string) ([]models.ShippingOption, error) {
	if city == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "City is required")
	}

	options, err := s.repo.FindByCity(ctx, city)
	if err != nil {
		s.logger.Error("Shipping option lookup failed", zap.String("city", city), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	if options == nil {
		options = []models.ShippingOption{}
	}
	return options, nil
}
