package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents a payment entity in the database
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);not null" json:"currency"`
	Status        string          `gorm:"type:varchar(20);not null;index" json:"status"`
	Description   string          `gorm:"type:varchar(500)" json:"description"`
	MerchantID    string          `gorm:"type:varchar(255);not null;index" json:"merchant_id"`
	CustomerID    string          `gorm:"type:varchar(255);not null;index" json:"customer_id"`
	CardLastFour  string          `gorm:"type:varchar(4)" json:"card_last_four"`
	PaymentMethod string          `gorm:"type:varchar(255)" json:"payment_method"`
	ReferenceID   string          `gorm:"type:varchar(255)" json:"reference_id"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	// The lifecycle service owns this stamp; GORM must not auto-update
	// it, or it would be set on create and overwrite the injected clock.
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate is a GORM hook that runs before creating a record.
// The lifecycle service assigns id and createdAt; this is a backstop
// for rows created outside it (fixtures, tooling).
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Status == "" {
		p.Status = "PENDING"
	}
	return nil
}
