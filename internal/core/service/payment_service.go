package service

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/cashflow/payment-records/internal/core"
	"github.com/cashflow/payment-records/internal/port/input"
	"github.com/cashflow/payment-records/internal/port/output"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

var (
	currencyPattern     = regexp.MustCompile(`^[A-Za-z]{3}$`)
	cardLastFourPattern = regexp.MustCompile(`^[0-9]{4}$`)
)

// PaymentServiceImpl implements the PaymentService input port.
// It is the only place lifecycle transitions are decided.
type PaymentServiceImpl struct {
	paymentRepo output.PaymentRepository
	events      output.PaymentEvents
	metrics     output.PaymentMetrics
	settler     Settler
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures the payment service
type Option func(*PaymentServiceImpl)

// WithClock substitutes the timestamp source, for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(s *PaymentServiceImpl) {
		s.now = now
	}
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo output.PaymentRepository,
	events output.PaymentEvents,
	metrics output.PaymentMetrics,
	settler Settler,
	logger *slog.Logger,
	opts ...Option,
) *PaymentServiceImpl {
	s := &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		events:      events,
		metrics:     metrics,
		settler:     settler,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePayment creates a new payment in PENDING status
func (s *PaymentServiceImpl) CreatePayment(req input.CreatePaymentRequest) (*input.PaymentResponse, error) {
	if err := validateCreateRequest(&req); err != nil {
		return nil, err
	}

	s.logger.Info("creating payment",
		"merchantId", req.MerchantID,
		"customerId", req.CustomerID,
		"amount", req.Amount,
		"currency", req.Currency)

	payment := &core.Payment{
		ID:            uuid.New(),
		Amount:        req.Amount,
		Currency:      strings.ToUpper(req.Currency),
		Status:        core.PaymentStatusPending,
		Description:   req.Description,
		MerchantID:    req.MerchantID,
		CustomerID:    req.CustomerID,
		CardLastFour:  req.CardLastFour,
		PaymentMethod: req.PaymentMethod,
		ReferenceID:   req.ReferenceID,
		CreatedAt:     s.now(),
	}

	saved, err := s.paymentRepo.Save(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	s.metrics.PaymentCreated()
	s.publishEvent(saved)

	s.logger.Info("payment created", "paymentId", saved.ID, "status", saved.Status)
	return input.FromPayment(saved), nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentServiceImpl) GetPayment(id uuid.UUID) (*input.PaymentResponse, error) {
	payment, err := s.loadPayment(id)
	if err != nil {
		return nil, err
	}
	return input.FromPayment(payment), nil
}

// ListPayments returns one page of payments, optionally filtered by merchant
func (s *PaymentServiceImpl) ListPayments(merchantID string, page input.Pageable) (*input.Page, error) {
	if page.Page < 0 {
		page.Page = 0
	}
	if page.Size <= 0 {
		page.Size = defaultPageSize
	}
	q := output.PageQuery{Page: page.Page, Size: page.Size}

	var (
		payments []*core.Payment
		total    int64
		err      error
	)
	if merchantID != "" {
		payments, total, err = s.paymentRepo.FindByMerchant(merchantID, q)
	} else {
		payments, total, err = s.paymentRepo.FindAll(q)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	content := make([]*input.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		content = append(content, input.FromPayment(p))
	}

	totalPages := int(total) / page.Size
	if int(total)%page.Size != 0 {
		totalPages++
	}
	return &input.Page{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// UpdatePayment merges the non-nil request fields onto the payment.
// Completed and refunded payments are frozen.
func (s *PaymentServiceImpl) UpdatePayment(id uuid.UUID, req input.UpdatePaymentRequest) (*input.PaymentResponse, error) {
	if err := validateUpdateRequest(&req); err != nil {
		return nil, err
	}

	payment, err := s.loadPayment(id)
	if err != nil {
		return nil, err
	}
	if !payment.IsModifiable() {
		return nil, &core.NotModifiableError{ID: id, Current: payment.Status}
	}

	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.Currency != nil {
		payment.Currency = strings.ToUpper(*req.Currency)
	}
	if req.Description != nil {
		payment.Description = *req.Description
	}
	if req.CardLastFour != nil {
		payment.CardLastFour = *req.CardLastFour
	}
	if req.PaymentMethod != nil {
		payment.PaymentMethod = *req.PaymentMethod
	}
	if req.ReferenceID != nil {
		payment.ReferenceID = *req.ReferenceID
	}
	s.touch(payment)

	saved, err := s.paymentRepo.Save(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	s.logger.Info("payment updated", "paymentId", saved.ID, "status", saved.Status)
	return input.FromPayment(saved), nil
}

// CancelPayment transitions the payment to CANCELLED
func (s *PaymentServiceImpl) CancelPayment(id uuid.UUID) error {
	payment, err := s.loadPayment(id)
	if err != nil {
		return err
	}
	if !payment.IsCancellable() {
		return &core.NotModifiableError{ID: id, Current: payment.Status}
	}

	payment.Status = core.PaymentStatusCancelled
	s.touch(payment)
	saved, err := s.paymentRepo.Save(payment)
	if err != nil {
		return fmt.Errorf("failed to cancel payment: %w", err)
	}
	s.publishEvent(saved)

	s.logger.Info("payment cancelled", "paymentId", id)
	return nil
}

// ProcessPayment walks a PENDING payment through PROCESSING to COMPLETED
// or FAILED. A failed settlement is a business outcome, not an error:
// the FAILED record is returned to the caller as a normal result.
func (s *PaymentServiceImpl) ProcessPayment(id uuid.UUID) (*input.PaymentResponse, error) {
	started := s.now()
	defer func() {
		s.metrics.ProcessingDuration(s.now().Sub(started))
	}()

	payment, err := s.loadPayment(id)
	if err != nil {
		return nil, err
	}
	if !payment.IsPending() {
		return nil, &core.InvalidStateError{
			ID:       id,
			Current:  payment.Status,
			Required: core.PaymentStatusPending,
		}
	}

	payment.Status = core.PaymentStatusProcessing
	s.touch(payment)
	if _, err := s.paymentRepo.Save(payment); err != nil {
		return nil, fmt.Errorf("failed to mark payment processing: %w", err)
	}

	if err := s.settler.Settle(payment); err != nil {
		payment.Status = core.PaymentStatusFailed
		s.touch(payment)
		saved, saveErr := s.paymentRepo.Save(payment)
		if saveErr != nil {
			return nil, fmt.Errorf("failed to record settlement failure: %w", saveErr)
		}
		s.metrics.PaymentProcessed(false)
		s.publishEvent(saved)

		s.logger.Error("payment processing failed", "paymentId", id, "error", err)
		return input.FromPayment(saved), nil
	}

	processedAt := s.now()
	payment.Status = core.PaymentStatusCompleted
	payment.ProcessedAt = &processedAt
	s.touch(payment)
	saved, err := s.paymentRepo.Save(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to complete payment: %w", err)
	}
	s.metrics.PaymentProcessed(true)
	s.publishEvent(saved)

	s.logger.Info("payment processed", "paymentId", id, "status", saved.Status)
	return input.FromPayment(saved), nil
}

// RefundPayment transitions a COMPLETED payment to REFUNDED
func (s *PaymentServiceImpl) RefundPayment(id uuid.UUID) (*input.PaymentResponse, error) {
	payment, err := s.loadPayment(id)
	if err != nil {
		return nil, err
	}
	if !payment.IsRefundable() {
		return nil, &core.InvalidStateError{
			ID:       id,
			Current:  payment.Status,
			Required: core.PaymentStatusCompleted,
		}
	}

	payment.Status = core.PaymentStatusRefunded
	s.touch(payment)
	saved, err := s.paymentRepo.Save(payment)
	if err != nil {
		return nil, fmt.Errorf("failed to refund payment: %w", err)
	}
	s.publishEvent(saved)

	s.logger.Info("refund processed", "paymentId", id, "status", saved.Status)
	return input.FromPayment(saved), nil
}

func (s *PaymentServiceImpl) loadPayment(id uuid.UUID) (*core.Payment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, &core.NotFoundError{ID: id}
	}
	return payment, nil
}

func (s *PaymentServiceImpl) touch(payment *core.Payment) {
	now := s.now()
	payment.UpdatedAt = &now
}

// publishEvent notifies downstream consumers of a lifecycle transition.
// Best effort: the payment is already persisted, so a broker outage is
// logged rather than surfaced to the caller.
func (s *PaymentServiceImpl) publishEvent(payment *core.Payment) {
	if s.events == nil {
		return
	}
	event := output.PaymentEvent{
		PaymentID: payment.ID,
		Status:    payment.Status,
		Timestamp: s.now(),
	}
	if err := s.events.PublishPaymentEvent(event); err != nil {
		s.logger.Warn("failed to publish payment event",
			"paymentId", payment.ID, "status", payment.Status, "error", err)
	}
}

func validateCreateRequest(req *input.CreatePaymentRequest) error {
	if err := validateAmount(req.Amount); err != nil {
		return err
	}
	if !currencyPattern.MatchString(req.Currency) {
		return &core.ValidationError{Field: "currency", Reason: "must be a 3-letter ISO code"}
	}
	if strings.TrimSpace(req.MerchantID) == "" {
		return &core.ValidationError{Field: "merchantId", Reason: "is required"}
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		return &core.ValidationError{Field: "customerId", Reason: "is required"}
	}
	if len(req.Description) > 500 {
		return &core.ValidationError{Field: "description", Reason: "must not exceed 500 characters"}
	}
	if req.CardLastFour != "" && !cardLastFourPattern.MatchString(req.CardLastFour) {
		return &core.ValidationError{Field: "cardLastFour", Reason: "must be exactly 4 digits"}
	}
	return nil
}

func validateUpdateRequest(req *input.UpdatePaymentRequest) error {
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return err
		}
	}
	if req.Currency != nil && !currencyPattern.MatchString(*req.Currency) {
		return &core.ValidationError{Field: "currency", Reason: "must be a 3-letter ISO code"}
	}
	if req.Description != nil && len(*req.Description) > 500 {
		return &core.ValidationError{Field: "description", Reason: "must not exceed 500 characters"}
	}
	if req.CardLastFour != nil && !cardLastFourPattern.MatchString(*req.CardLastFour) {
		return &core.ValidationError{Field: "cardLastFour", Reason: "must be exactly 4 digits"}
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return &core.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if amount.Exponent() < -2 {
		return &core.ValidationError{Field: "amount", Reason: "must have at most 2 decimal places"}
	}
	return nil
}
