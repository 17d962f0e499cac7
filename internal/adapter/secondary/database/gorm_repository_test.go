package database

import (
	"testing"
	"time"

	"github.com/cashflow/payment-records/internal/constant/model/db"
	"github.com/cashflow/payment-records/internal/core"
	"github.com/cashflow/payment-records/internal/port/output"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) output.PaymentRepository {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(&db.Payment{}))
	return NewGormPaymentRepository(gormDB)
}

func newStoredPayment(merchantID, customerID string, status core.PaymentStatus) *core.Payment {
	return &core.Payment{
		ID:         uuid.New(),
		Amount:     decimal.RequireFromString("150.00"),
		Currency:   "USD",
		Status:     status,
		MerchantID: merchantID,
		CustomerID: customerID,
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// The lifecycle service owns every timestamp: a freshly created payment
// must come back without updatedAt, and a service-stamped updatedAt must
// survive the round trip instead of being replaced by the wall clock.
func TestSavePreservesServiceTimestamps(t *testing.T) {
	repo := newTestRepository(t)
	payment := newStoredPayment("m1", "c1", core.PaymentStatusPending)

	saved, err := repo.Save(payment)
	require.NoError(t, err)
	assert.Nil(t, saved.UpdatedAt, "updatedAt must be absent until the first update")

	loaded, err := repo.FindByID(payment.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Nil(t, loaded.UpdatedAt, "updatedAt must be absent until the first update")
	assert.WithinDuration(t, payment.CreatedAt, loaded.CreatedAt, time.Second)

	stamp := payment.CreatedAt.Add(time.Minute)
	loaded.Status = core.PaymentStatusCancelled
	loaded.UpdatedAt = &stamp
	_, err = repo.Save(loaded)
	require.NoError(t, err)

	reloaded, err := repo.FindByID(payment.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	require.NotNil(t, reloaded.UpdatedAt)
	assert.WithinDuration(t, stamp, *reloaded.UpdatedAt, time.Second,
		"the stored updatedAt must be the stamp the service wrote, not the save time")
	assert.Equal(t, core.PaymentStatusCancelled, reloaded.Status)
}

func TestFindByIDMissing(t *testing.T) {
	repo := newTestRepository(t)

	loaded, err := repo.FindByID(uuid.New())

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFindByMerchantPagination(t *testing.T) {
	repo := newTestRepository(t)
	for i := 0; i < 5; i++ {
		_, err := repo.Save(newStoredPayment("m1", "c1", core.PaymentStatusPending))
		require.NoError(t, err)
	}
	_, err := repo.Save(newStoredPayment("m2", "c1", core.PaymentStatusPending))
	require.NoError(t, err)

	payments, total, err := repo.FindByMerchant("m1", output.PageQuery{Page: 0, Size: 3})
	require.NoError(t, err)
	assert.Len(t, payments, 3)
	assert.Equal(t, int64(5), total)

	payments, total, err = repo.FindByMerchant("m1", output.PageQuery{Page: 1, Size: 3})
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, int64(5), total)
}

func TestFindByCustomer(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Save(newStoredPayment("m1", "c1", core.PaymentStatusPending))
	require.NoError(t, err)
	_, err = repo.Save(newStoredPayment("m1", "c2", core.PaymentStatusPending))
	require.NoError(t, err)
	_, err = repo.Save(newStoredPayment("m2", "c2", core.PaymentStatusPending))
	require.NoError(t, err)

	payments, total, err := repo.FindByCustomer("c2", output.PageQuery{Page: 0, Size: 10})

	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, int64(2), total)
	for _, p := range payments {
		assert.Equal(t, "c2", p.CustomerID)
	}
}

func TestFindByStatus(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Save(newStoredPayment("m1", "c1", core.PaymentStatusPending))
	require.NoError(t, err)
	_, err = repo.Save(newStoredPayment("m1", "c1", core.PaymentStatusCompleted))
	require.NoError(t, err)
	_, err = repo.Save(newStoredPayment("m1", "c1", core.PaymentStatusCompleted))
	require.NoError(t, err)

	completed, err := repo.FindByStatus(core.PaymentStatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 2)
	for _, p := range completed {
		assert.Equal(t, core.PaymentStatusCompleted, p.Status)
	}

	failed, err := repo.FindByStatus(core.PaymentStatusFailed)
	require.NoError(t, err)
	assert.Empty(t, failed)
}
