package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/models"
	"github.com/muhammadEhsanUllahdev/MareketNesting-sub003/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestOrderCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     "ORD-20260830-A1B2C3D4",
		UserID:          "user-1",
		PaymentIntentID: "pi_1",
		Amount:          142997,
		Currency:        "usd",
		Status:          models.OrderStatusConfirmed,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(order.ID))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), order)
	assert.NoError(t, err)
}

func TestOrderCreate_DuplicateIntentFails(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     "ORD-20260830-B2C3D4E5",
		UserID:          "user-1",
		PaymentIntentID: "pi_dup",
		Amount:          42997,
		Currency:        "usd",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), order)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFindByPaymentIntentID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	orderID := uuid.New()
	now := time.Now()
	orderRows := sqlmock.NewRows([]string{"id", "order_number", "user_id", "payment_intent_id", "amount", "currency", "status", "created_at", "updated_at"}).
		AddRow(orderID, "ORD-20260830-C3D4E5F6", "user-1", "pi_7", int64(42997), "usd", models.OrderStatusConfirmed, now, now)
	itemRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "quantity", "unit_price"}).
		AddRow(uuid.New(), orderID, "p1", "Widget", 2, 199.99)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(orderRows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(itemRows)

	order, err := repo.FindByPaymentIntentID(context.Background(), "pi_7")
	assert.NoError(t, err)
	assert.Equal(t, "pi_7", order.PaymentIntentID)
	assert.Len(t, order.OrderItems, 1)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
}

func TestFindByPaymentIntentID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	order, err := repo.FindByPaymentIntentID(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, order)
}

func TestFindByUserID_Paginated(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	orderID := uuid.New()
	orderRows := sqlmock.NewRows([]string{"id", "order_number", "user_id", "payment_intent_id", "amount", "currency", "status", "created_at", "updated_at"}).
		AddRow(orderID, "ORD-20260830-D4E5F6A1", "user-1", "pi_9", int64(99900), "usd", models.OrderStatusConfirmed, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "orders"`)).
		WillReturnRows(orderRows)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "quantity", "unit_price"}))

	orders, total, err := repo.FindByUserID(context.Background(), "user-1", 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, orders, 1)
}
