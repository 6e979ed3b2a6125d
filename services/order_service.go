package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/kafka"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	aws_pkg "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/pkg/aws"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService materializes orders from verified payment intents. Confirmation
// is idempotent: retried confirms for one intent always return the same order.
type OrderService interface {
	ConfirmOrder(ctx context.Context, userID, intentID string) (*models.Order, error)
	GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, error)
	GetUserOrders(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	payments    PaymentService
	cart        CartService
	producer    kafka.ProducerAPI
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	payments PaymentService,
	cart CartService,
	producer kafka.ProducerAPI,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		payments:    payments,
		cart:        cart,
		producer:    producer,
		snsClient:   snsClient,
		snsTopicArn: snsTopicArn,
		logger:      logger,
	}
}

// ConfirmOrder verifies the intent with the gateway and creates the order
// exactly once. The sequence is:
//  1. return the existing order if one was already materialized for this
//     intent (client retries after a timeout are expected);
//  2. re-check the intent status with the gateway, never trusting the
//     client's success report;
//  3. create the order from the checkout context captured at intent creation;
//  4. retire the cart and publish the confirmation event, both best effort.
func (s *orderService) ConfirmOrder(ctx context.Context, userID, intentID string) (*models.Order, error) {
	if intentID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Payment intent id is required")
	}

	if existing, err := s.orderRepo.FindByPaymentIntentID(ctx, intentID); err == nil {
		if existing.UserID != userID {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Order not found")
		}
		return existing, nil
	} else if err != gorm.ErrRecordNotFound {
		s.logger.Error("Order lookup failed", zap.String("intent_id", intentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}

	if err := s.payments.VerifyIntent(ctx, intentID); err != nil {
		if appErr := apperrors.AsError(err); appErr.Code == apperrors.ErrIntentNotSucceeded.Code {
			// Hard failure; the cart stays intact so checkout can restart
			if markErr := s.paymentRepo.MarkFailed(ctx, intentID); markErr != nil {
				s.logger.Warn("Failed to mark payment failed", zap.String("intent_id", intentID), zap.Error(markErr))
			}
		}
		return nil, err
	}

	payment, err := s.paymentRepo.FindByIntentID(ctx, intentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Unknown payment intent")
		}
		s.logger.Error("Payment lookup failed", zap.String("intent_id", intentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	if payment.UserID != userID {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Unknown payment intent")
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(payment.ItemsJSON), &items); err != nil {
		s.logger.Error("Corrupt cart snapshot on payment", zap.String("intent_id", intentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	order := &models.Order{
		OrderNumber:      generateOrderNumber(),
		UserID:           userID,
		PaymentIntentID:  intentID,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Status:           models.OrderStatusConfirmed,
		ShippingCarrier:  payment.ShippingCarrier,
		ShippingPrice:    payment.ShippingPrice,
		DeliveryEstimate: payment.DeliveryEstimate,
		AddressJSON:      payment.AddressJSON,
	}
	for _, item := range items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// A concurrent confirm may have won the unique-index race; the
		// existing order is the answer either way.
		if existing, findErr := s.orderRepo.FindByPaymentIntentID(ctx, intentID); findErr == nil {
			return existing, nil
		}
		s.logger.Error("Order creation failed", zap.String("intent_id", intentID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.paymentRepo.MarkSucceeded(ctx, intentID); err != nil {
		s.logger.Warn("Failed to mark payment succeeded", zap.String("intent_id", intentID), zap.Error(err))
	}

	if err := s.cart.Clear(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after order confirmation",
			zap.String("user_id", userID),
			zap.String("order_number", order.OrderNumber),
			zap.Error(err),
		)
	}

	s.publishConfirmed(ctx, order)

	s.logger.Info("Order confirmed",
		zap.String("order_number", order.OrderNumber),
		zap.String("user_id", userID),
		zap.String("intent_id", intentID),
	)
	return order, nil
}

// GetOrder retrieves one order scoped to its owner. Another user's order id
// reads as not-found, never as forbidden, so ids cannot be enumerated.
func (s *orderService) GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Order not found")
		}
		s.logger.Error("Order lookup failed", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	return order, nil
}

// GetUserOrders retrieves paginated orders for a specific user
func (s *orderService) GetUserOrders(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error) {
	if userID == "" {
		return nil, 0, apperrors.ErrUnauthenticated
	}
	orders, total, err := s.orderRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("Order listing failed", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	return orders, total, nil
}

// publishConfirmed emits the order-confirmed event to Kafka and SNS.
// Both are best effort; a broker outage must not fail a paid order.
func (s *orderService) publishConfirmed(ctx context.Context, order *models.Order) {
	event := models.OrderConfirmedEvent{
		Event:           "order.confirmed",
		OrderID:         order.ID.String(),
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		PaymentIntentID: order.PaymentIntentID,
		Amount:          order.Amount,
		Currency:        order.Currency,
		Timestamp:       time.Now().UTC(),
	}

	if s.producer != nil {
		if err := s.producer.SendOrderConfirmedEvent(event); err != nil {
			s.logger.Warn("Kafka publish failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}

	if s.snsClient != nil && s.snsTopicArn != "" {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		if err := s.snsClient.Publish(ctx, s.snsTopicArn, b); err != nil {
			s.logger.Warn("SNS publish failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
}

func generateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
