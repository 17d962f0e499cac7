package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cashflow/payment-records/internal/port/input"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PaymentHandler is a primary adapter (HTTP handler)
type PaymentHandler struct {
	paymentService input.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService input.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Register mounts the payment routes on the given group
func (h *PaymentHandler) Register(g *echo.Group) {
	g.POST("/payments", h.CreatePayment)
	g.GET("/payments", h.ListPayments)
	g.GET("/payments/:id", h.GetPayment)
	g.PUT("/payments/:id", h.UpdatePayment)
	g.DELETE("/payments/:id", h.CancelPayment)
	g.POST("/payments/:id/process", h.ProcessPayment)
	g.POST("/payments/:id/refund", h.RefundPayment)
}

// CreatePaymentRequest represents the HTTP request to create a payment
type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" validate:"required,len=3,alpha"`
	Description   string          `json:"description" validate:"max=500"`
	MerchantID    string          `json:"merchantId" validate:"required"`
	CustomerID    string          `json:"customerId" validate:"required"`
	CardLastFour  string          `json:"cardLastFour" validate:"omitempty,len=4,numeric"`
	PaymentMethod string          `json:"paymentMethod"`
	ReferenceID   string          `json:"referenceId"`
}

// UpdatePaymentRequest represents a partial update; absent fields are
// left untouched
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Description   *string          `json:"description" validate:"omitempty,max=500"`
	CardLastFour  *string          `json:"cardLastFour" validate:"omitempty,len=4,numeric"`
	PaymentMethod *string          `json:"paymentMethod"`
	ReferenceID   *string          `json:"referenceId"`
}

// PaymentResponse represents the HTTP response for a payment
type PaymentResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	Description   string          `json:"description,omitempty"`
	MerchantID    string          `json:"merchantId"`
	CustomerID    string          `json:"customerId"`
	CardLastFour  string          `json:"cardLastFour,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	ReferenceID   string          `json:"referenceId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
}

// PageResponse is one page of payments plus pagination totals
type PageResponse struct {
	Content       []PaymentResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

func toHTTPResponse(r *input.PaymentResponse) PaymentResponse {
	return PaymentResponse{
		ID:            r.ID.String(),
		Amount:        r.Amount,
		Currency:      r.Currency,
		Status:        string(r.Status),
		Description:   r.Description,
		MerchantID:    r.MerchantID,
		CustomerID:    r.CustomerID,
		CardLastFour:  r.CardLastFour,
		PaymentMethod: r.PaymentMethod,
		ReferenceID:   r.ReferenceID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		ProcessedAt:   r.ProcessedAt,
	}
}

// CreatePayment handles POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	response, err := h.paymentService.CreatePayment(input.CreatePaymentRequest{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		MerchantID:    req.MerchantID,
		CustomerID:    req.CustomerID,
		CardLastFour:  req.CardLastFour,
		PaymentMethod: req.PaymentMethod,
		ReferenceID:   req.ReferenceID,
	})
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusCreated, toHTTPResponse(response))
}

// GetPayment handles GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	response, err := h.paymentService.GetPayment(id)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusOK, toHTTPResponse(response))
}

// ListPayments handles GET /api/v1/payments?merchantId=&page=&size=
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.paymentService.ListPayments(c.QueryParam("merchantId"), input.Pageable{
		Page: page,
		Size: size,
	})
	if err != nil {
		return renderError(c, err)
	}

	content := make([]PaymentResponse, 0, len(result.Content))
	for _, r := range result.Content {
		content = append(content, toHTTPResponse(r))
	}
	return c.JSON(http.StatusOK, PageResponse{
		Content:       content,
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
	})
}

// UpdatePayment handles PUT /api/v1/payments/:id
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	var req UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	response, err := h.paymentService.UpdatePayment(id, input.UpdatePaymentRequest{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		CardLastFour:  req.CardLastFour,
		PaymentMethod: req.PaymentMethod,
		ReferenceID:   req.ReferenceID,
	})
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusOK, toHTTPResponse(response))
}

// CancelPayment handles DELETE /api/v1/payments/:id
func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	if err := h.paymentService.CancelPayment(id); err != nil {
		return renderError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ProcessPayment handles POST /api/v1/payments/:id/process
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	response, err := h.paymentService.ProcessPayment(id)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusOK, toHTTPResponse(response))
}

// RefundPayment handles POST /api/v1/payments/:id/refund
func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}

	response, err := h.paymentService.RefundPayment(id)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(http.StatusOK, toHTTPResponse(response))
}

func parseID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
