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

func TestPaymentCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	intentID := "pi_1"
	payment := &models.Payment{
		ID:              uuid.New(),
		UserID:          "user-1",
		StripePaymentID: &intentID,
		Amount:          142997,
		Currency:        "usd",
		Status:          models.PaymentStatusPending,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(payment.ID))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), payment)
	assert.NoError(t, err)
}

func TestPaymentFindByIntentID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "stripe_payment_id", "amount", "currency", "status", "created_at", "updated_at"}).
		AddRow(uuid.New(), "user-1", "pi_5", int64(42997), "usd", models.PaymentStatusPending, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(rows)

	payment, err := repo.FindByIntentID(context.Background(), "pi_5")
	assert.NoError(t, err)
	assert.Equal(t, "pi_5", *payment.StripePaymentID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
}

func TestPaymentFindByIntentID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payments"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	payment, err := repo.FindByIntentID(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, payment)
}

func TestMarkSucceeded_UpdatesStatus(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "payments"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkSucceeded(context.Background(), "pi_5")
	assert.NoError(t, err)
}

func TestMarkFailed_UpdatesStatus(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormPaymentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "payments"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkFailed(context.Background(), "pi_6")
	assert.NoError(t, err)
}
