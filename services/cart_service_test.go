package services_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/muhammadEhsanUllahdev/MareketNesting-sub003/errors"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- mock cart repository ----

type mockCartRepo struct {
	cart      *models.Cart
	getErr    error
	saveErr   error
	deleteErr error

	getCalls    int
	saveCalls   int
	deleteCalls int
}

func (m *mockCartRepo) GetCart(_ context.Context, _ string) (*models.Cart, error) {
	m.getCalls++
	return m.cart, m.getErr
}

func (m *mockCartRepo) SaveCart(_ context.Context, cart *models.Cart) error {
	m.saveCalls++
	if m.saveErr == nil {
		m.cart = cart
	}
	return m.saveErr
}

func (m *mockCartRepo) DeleteCart(_ context.Context, _ string) error {
	m.deleteCalls++
	return m.deleteErr
}

// ---- mock product repository ----

type mockProductRepo struct {
	product *models.Product
	err     error
	calls   int
}

func (m *mockProductRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Product, error) {
	m.calls++
	return m.product, m.err
}

// ---- helpers ----

func newCartService(repo *mockCartRepo, products *mockProductRepo) services.CartService {
	logger, _ := zap.NewDevelopment()
	return services.NewCartService(repo, products, logger)
}

func cartWith(productID string, qty int) *models.Cart {
	return &models.Cart{
		UserID: "user-1",
		Items: []models.CartItem{
			{ID: "line-1", ProductID: productID, Quantity: qty, UnitPrice: 19.99, Stock: 10},
		},
	}
}

// ---- tests ----

func TestList_Unauthenticated(t *testing.T) {
	svc := newCartService(&mockCartRepo{}, &mockProductRepo{})

	_, err := svc.List(context.Background(), "")
	assert.Equal(t, apperrors.ErrUnauthenticated, err)
}

func TestList_EmptyCartIsNotAnError(t *testing.T) {
	svc := newCartService(&mockCartRepo{cart: nil}, &mockProductRepo{})

	cart, err := svc.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NotNil(t, cart)
	assert.Empty(t, cart.Items)
}

func TestUpdateQuantity_BelowOneRejectedLocally(t *testing.T) {
	repo := &mockCartRepo{}
	products := &mockProductRepo{}
	svc := newCartService(repo, products)

	_, err := svc.UpdateQuantity(context.Background(), "user-1", uuid.NewString(), 0)

	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
	}
	// Rejected before any store or stock round trip
	assert.Equal(t, 0, repo.getCalls)
	assert.Equal(t, 0, repo.saveCalls)
	assert.Equal(t, 0, products.calls)
}

func TestUpdateQuantity_StockExceeded(t *testing.T) {
	productID := uuid.New()
	repo := &mockCartRepo{cart: cartWith(productID.String(), 2)}
	products := &mockProductRepo{product: &models.Product{ID: productID, Stock: 3, Price: 19.99}}
	svc := newCartService(repo, products)

	_, err := svc.UpdateQuantity(context.Background(), "user-1", productID.String(), 4)

	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.ErrStockExceeded.Code, appErr.Code)
	}
	assert.Equal(t, 0, repo.saveCalls)
	// Cart unchanged
	assert.Equal(t, 2, repo.cart.Items[0].Quantity)
}

func TestUpdateQuantity_LineRemovedConcurrently(t *testing.T) {
	repo := &mockCartRepo{cart: &models.Cart{UserID: "user-1", Items: []models.CartItem{}}}
	svc := newCartService(repo, &mockProductRepo{})

	_, err := svc.UpdateQuantity(context.Background(), "user-1", uuid.NewString(), 2)

	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.ErrNotFound.Code, appErr.Code)
	}
}

func TestUpdateQuantity_ProductGone(t *testing.T) {
	productID := uuid.New()
	repo := &mockCartRepo{cart: cartWith(productID.String(), 1)}
	products := &mockProductRepo{err: gorm.ErrRecordNotFound}
	svc := newCartService(repo, products)

	_, err := svc.UpdateQuantity(context.Background(), "user-1", productID.String(), 2)

	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.ErrNotFound.Code, appErr.Code)
	}
}

func TestUpdateQuantity_SuccessRefreshesAuthoritativeFields(t *testing.T) {
	productID := uuid.New()
	repo := &mockCartRepo{cart: cartWith(productID.String(), 1)}
	products := &mockProductRepo{product: &models.Product{ID: productID, Stock: 7, Price: 24.50}}
	svc := newCartService(repo, products)

	invalidated := ""
	svc.OnInvalidate(func(userID string) { invalidated = userID })

	cart, err := svc.UpdateQuantity(context.Background(), "user-1", productID.String(), 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 7, cart.Items[0].Stock)
	assert.InDelta(t, 24.50, cart.Items[0].UnitPrice, 0.0001)
	assert.Equal(t, 1, repo.saveCalls)
	assert.Equal(t, "user-1", invalidated)
}

func TestRemove_Idempotent(t *testing.T) {
	repo := &mockCartRepo{cart: cartWith(uuid.NewString(), 1)}
	svc := newCartService(repo, &mockProductRepo{})

	// Removing a product that is not in the cart succeeds without a write
	cart, err := svc.Remove(context.Background(), "user-1", "not-in-cart")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 0, repo.saveCalls)
}

func TestRemove_DeletesLineAndInvalidates(t *testing.T) {
	productID := uuid.NewString()
	repo := &mockCartRepo{cart: cartWith(productID, 2)}
	svc := newCartService(repo, &mockProductRepo{})

	invalidations := 0
	svc.OnInvalidate(func(string) { invalidations++ })

	cart, err := svc.Remove(context.Background(), "user-1", productID)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 1, repo.saveCalls)
	assert.Equal(t, 1, invalidations)
}

func TestClear_NetworkError(t *testing.T) {
	repo := &mockCartRepo{deleteErr: errors.New("redis down")}
	svc := newCartService(repo, &mockProductRepo{})

	err := svc.Clear(context.Background(), "user-1")

	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.ErrNetwork.Code, appErr.Code)
	}
}
