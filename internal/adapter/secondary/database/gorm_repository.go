package database

import (
	"errors"
	"fmt"

	"github.com/cashflow/payment-records/internal/constant/model/db"
	"github.com/cashflow/payment-records/internal/core"
	"github.com/cashflow/payment-records/internal/port/output"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository is a secondary adapter that implements PaymentRepository output port
type GormPaymentRepository struct {
	gormDB *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository
func NewGormPaymentRepository(gormDB *gorm.DB) output.PaymentRepository {
	return &GormPaymentRepository{gormDB: gormDB}
}

// toCore converts db.Payment to core.Payment
func toCore(p *db.Payment) *core.Payment {
	return &core.Payment{
		ID:            p.ID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        core.PaymentStatus(p.Status),
		Description:   p.Description,
		MerchantID:    p.MerchantID,
		CustomerID:    p.CustomerID,
		CardLastFour:  p.CardLastFour,
		PaymentMethod: p.PaymentMethod,
		ReferenceID:   p.ReferenceID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		ProcessedAt:   p.ProcessedAt,
	}
}

// fromCore converts core.Payment to db.Payment
func fromCore(p *core.Payment) *db.Payment {
	return &db.Payment{
		ID:            p.ID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		Description:   p.Description,
		MerchantID:    p.MerchantID,
		CustomerID:    p.CustomerID,
		CardLastFour:  p.CardLastFour,
		PaymentMethod: p.PaymentMethod,
		ReferenceID:   p.ReferenceID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		ProcessedAt:   p.ProcessedAt,
	}
}

// Save inserts or updates a payment and returns the stored state
func (r *GormPaymentRepository) Save(payment *core.Payment) (*core.Payment, error) {
	dbPayment := fromCore(payment)
	if err := r.gormDB.Save(dbPayment).Error; err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	return toCore(dbPayment), nil
}

// FindByID retrieves a payment by its ID. Returns (nil, nil) when no
// payment exists.
func (r *GormPaymentRepository) FindByID(id uuid.UUID) (*core.Payment, error) {
	var dbPayment db.Payment
	if err := r.gormDB.Where("id = ?", id).First(&dbPayment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return toCore(&dbPayment), nil
}

// FindAll returns one page of payments plus the total count
func (r *GormPaymentRepository) FindAll(q output.PageQuery) ([]*core.Payment, int64, error) {
	return r.findPage(r.gormDB.Model(&db.Payment{}), q)
}

// FindByMerchant returns one page of a merchant's payments plus the total count
func (r *GormPaymentRepository) FindByMerchant(merchantID string, q output.PageQuery) ([]*core.Payment, int64, error) {
	return r.findPage(r.gormDB.Model(&db.Payment{}).Where("merchant_id = ?", merchantID), q)
}

// FindByCustomer returns one page of a customer's payments plus the total count
func (r *GormPaymentRepository) FindByCustomer(customerID string, q output.PageQuery) ([]*core.Payment, int64, error) {
	return r.findPage(r.gormDB.Model(&db.Payment{}).Where("customer_id = ?", customerID), q)
}

// FindByStatus returns all payments currently in the given status
func (r *GormPaymentRepository) FindByStatus(status core.PaymentStatus) ([]*core.Payment, error) {
	var dbPayments []db.Payment
	if err := r.gormDB.Where("status = ?", string(status)).Find(&dbPayments).Error; err != nil {
		return nil, fmt.Errorf("failed to find payments by status: %w", err)
	}
	payments := make([]*core.Payment, 0, len(dbPayments))
	for i := range dbPayments {
		payments = append(payments, toCore(&dbPayments[i]))
	}
	return payments, nil
}

func (r *GormPaymentRepository) findPage(query *gorm.DB, q output.PageQuery) ([]*core.Payment, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var dbPayments []db.Payment
	if err := query.
		Order("created_at").
		Offset(q.Page * q.Size).
		Limit(q.Size).
		Find(&dbPayments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	payments := make([]*core.Payment, 0, len(dbPayments))
	for i := range dbPayments {
		payments = append(payments, toCore(&dbPayments[i]))
	}
	return payments, total, nil
}
