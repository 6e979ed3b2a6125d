package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/repository"

	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// PaymentService drives the pre-charge half of the payment handshake: it
// creates one gateway intent per checkout attempt and later re-verifies the
// intent's status server-side.
type PaymentService interface {
	CreateIntent(ctx context.Context, userID string, items []models.CartItem, addr models.ShippingAddress, option models.ShippingOption, currency string) (*IntentRef, error)
	VerifyIntent(ctx context.Context, intentID string) error
}

type paymentService struct {
	gateway PaymentGateway
	repo    repository.PaymentRepository
	logger  *zap.Logger
}

func NewPaymentService(gateway PaymentGateway, repo repository.PaymentRepository, logger *zap.Logger) PaymentService {
	return &paymentService{
		gateway: gateway,
		repo:    repo,
		logger:  logger,
	}
}

// AmountInMinorUnits converts a decimal total to the gateway's smallest
// currency unit, rounded to the cent.
func AmountInMinorUnits(subtotal, shipping float64) int64 {
	return int64(math.Round((subtotal + shipping) * 100))
}

// CreateIntent computes the charge amount from the submitted snapshot plus
// the shipping price and opens a gateway intent for it. The amount is always
// recomputed server-side; client-supplied totals are ignored. Failure here
// happens before any charge and is freely retryable.
func (s *paymentService) CreateIntent(ctx context.Context, userID string, items []models.CartItem, addr models.ShippingAddress, option models.ShippingOption, currency string) (*IntentRef, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if len(items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	snapshot := models.Cart{Items: items}
	amount := AmountInMinorUnits(snapshot.Subtotal(), option.Price)

	ref, err := s.gateway.CreateIntent(ctx, amount, currency, map[string]string{
		"user_id": userID,
	})
	if err != nil {
		s.logger.Error("PaymentIntent creation failed", zap.String("user_id", userID), zap.Error(err))
		return nil, gatewayError(err)
	}

	itemsBytes, _ := json.Marshal(items)
	addrBytes, _ := json.Marshal(addr)

	payment := &models.Payment{
		UserID:           userID,
		Amount:           amount,
		Currency:         currency,
		Status:           models.PaymentStatusPending,
		StripePaymentID:  &ref.ID,
		ItemsJSON:        string(itemsBytes),
		AddressJSON:      string(addrBytes),
		ShippingCarrier:  option.Carrier,
		ShippingPrice:    option.Price,
		DeliveryEstimate: option.DeliveryEstimate,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to persist payment", zap.String("intent_id", ref.ID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}

	s.logger.Info("PaymentIntent created",
		zap.String("user_id", userID),
		zap.String("intent_id", ref.ID),
		zap.Int64("amount", amount),
	)
	return ref, nil
}

// VerifyIntent re-checks the intent's status with the gateway. Only a
// "succeeded" status passes; anything the gateway reports otherwise is
// IntentNotSucceeded, while a transport failure stays a NetworkError so
// callers know a retry is required, not a restart.
func (s *paymentService) VerifyIntent(ctx context.Context, intentID string) error {
	status, err := s.gateway.IntentStatus(ctx, intentID)
	if err != nil {
		s.logger.Error("Intent status lookup failed", zap.String("intent_id", intentID), zap.Error(err))
		return gatewayError(err)
	}
	if status != IntentStatusSucceeded {
		s.logger.Warn("Intent not succeeded",
			zap.String("intent_id", intentID),
			zap.String("status", status),
		)
		return apperrors.ErrIntentNotSucceeded
	}
	return nil
}

// gatewayError distinguishes a response from the gateway (it answered, the
// request was rejected) from a transport failure (unknown outcome, retry).
func gatewayError(err error) *apperrors.Error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripe.ErrorTypeCard {
			return apperrors.Wrap(apperrors.ErrDeclined, err)
		}
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return apperrors.Wrap(apperrors.ErrNetwork, err)
}
