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
)

// ---- mock shipping option repository ----

type mockShippingRepo struct {
	options []models.ShippingOption
	err     error
	calls   int
}

func (m *mockShippingRepo) FindByCity(_ context.Context, _ string) ([]models.ShippingOption, error) {
	m.calls++
	return m.options, m.err
}

func (m *mockShippingRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.ShippingOption, error) {
	if len(m.options) == 0 {
		return nil, errors.New("not found")
	}
	return &m.options[0], nil
}

func newShippingService(repo *mockShippingRepo) services.ShippingService {
	logger, _ := zap.NewDevelopment()
	return services.NewShippingService(repo, logger)
}

// ---- tests ----

func TestOptionsByCity_ReturnsRegisteredCarriers(t *testing.T) {
	repo := &mockShippingRepo{options: []models.ShippingOption{
		{ID: uuid.New(), Carrier: "DHL", City: "New York", Price: 500},
		{ID: uuid.New(), Carrier: "FedEx", City: "New York", Price: 1200},
	}}
	svc := newShippingService(repo)

	options, err := svc.OptionsByCity(context.Background(), "New York")
	assert.NoError(t, err)
	assert.Len(t, options, 2)
}

func TestOptionsByCity_EmptyCityRejectedLocally(t *testing.T) {
	repo := &mockShippingRepo{}
	svc := newShippingService(repo)

	_, err := svc.OptionsByCity(context.Background(), "")
	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
	}
	assert.Equal(t, 0, repo.calls)
}

func TestOptionsByCity_UnservedCityIsEmptySlice(t *testing.T) {
	repo := &mockShippingRepo{options: nil}
	svc := newShippingService(repo)

	options, err := svc.OptionsByCity(context.Background(), "Nowhere")
	assert.NoError(t, err)
	assert.NotNil(t, options)
	assert.Empty(t, options)
}

func TestOptionsByCity_LookupFailureIsNetworkError(t *testing.T) {
	repo := &mockShippingRepo{err: errors.New("connection refused")}
	svc := newShippingService(repo)

	_, err := svc.OptionsByCity(context.Background(), "New York")
	var appErr *apperrors.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperrors.ErrNetwork.Code, appErr.Code)
	}
}
