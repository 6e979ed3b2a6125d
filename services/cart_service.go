package services

import (
	"context"
	"sync"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService owns the authoritative cart for each signed-in user. Every
// successful mutation fires the invalidation listeners so any cached view is
// at most one round trip stale.
type CartService interface {
	List(ctx context.Context, userID string) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	Remove(ctx context.Context, userID, productID string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) error
	OnInvalidate(fn func(userID string))
}

type cartService struct {
	repo        repository.CartRepository
	productRepo repository.ProductRepository
	logger      *zap.Logger

	mu        sync.RWMutex
	listeners []func(userID string)
}

func NewCartService(repo repository.CartRepository, productRepo repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartService{
		repo:        repo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// OnInvalidate registers a listener called after every successful mutation.
// Consumers (badge counters, open checkout views) re-fetch instead of holding
// private state.
func (s *cartService) OnInvalidate(fn func(userID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *cartService) notifyInvalidate(userID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.listeners {
		fn(userID)
	}
}

func (s *cartService) List(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	// Rejected locally, before any store round trip
	if quantity < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Quantity must be at least 1")
	}

	cart, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Cart line not found")
	}

	productUUID, err := uuid.Parse(productID)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, productUUID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Product no longer available")
		}
		s.logger.Error("Stock lookup failed", zap.String("product_id", productID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}

	if quantity > product.Stock {
		return nil, apperrors.ErrStockExceeded
	}

	cart.Items[idx].Quantity = quantity
	// Refresh the remote-authoritative fields on the stored copy
	cart.Items[idx].Stock = product.Stock
	cart.Items[idx].UnitPrice = product.Price

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}

	s.notifyInvalidate(userID)
	return cart, nil
}

// Remove deletes a cart line. Removing an already-removed line is a success
// from the caller's perspective.
func (s *cartService) Remove(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	newItems := make([]models.CartItem, 0, len(cart.Items))
	removed := false
	for _, item := range cart.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		newItems = append(newItems, item)
	}
	if !removed {
		return cart, nil
	}
	cart.Items = newItems

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		s.logger.Error("Failed to update cart", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.ErrNetwork, err)
	}

	s.notifyInvalidate(userID)
	return cart, nil
}

func (s *cartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}
	if err := s.repo.DeleteCart(ctx, userID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		return apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	s.notifyInvalidate(userID)
	return nil
}
