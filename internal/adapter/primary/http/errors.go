package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cashflow/payment-records/internal/core"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Error codes rendered on the wire
const (
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInvalidState  = "INVALID_STATE"
	CodeValidation    = "VALIDATION_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// ErrorResponse is the error body for all non-2xx outcomes
type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationErrorResponse adds per-field messages to the error body
type ValidationErrorResponse struct {
	ErrorResponse
	FieldErrors map[string]string `json:"fieldErrors"`
}

// renderError translates typed service failures into HTTP responses.
// Anything unclassified becomes a 500 without leaking internals.
func renderError(c echo.Context, err error) error {
	var (
		notFound      *core.NotFoundError
		notModifiable *core.NotModifiableError
		invalidState  *core.InvalidStateError
		validation    *core.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return errorJSON(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.As(err, &notModifiable):
		return errorJSON(c, http.StatusConflict, CodeConflict, err.Error())
	case errors.As(err, &invalidState):
		return errorJSON(c, http.StatusConflict, CodeInvalidState, err.Error())
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			ErrorResponse: errorBody(http.StatusBadRequest, CodeValidation, "Request validation failed"),
			FieldErrors:   map[string]string{validation.Field: validation.Reason},
		})
	default:
		c.Logger().Error(err)
		return errorJSON(c, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
	}
}

func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, errorBody(status, code, message))
}

func errorBody(status int, code, message string) ErrorResponse {
	return ErrorResponse{
		Status:    status,
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func malformedBody(c echo.Context) error {
	return errorJSON(c, http.StatusBadRequest, CodeValidation, "Invalid request body")
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		ErrorResponse: errorBody(http.StatusBadRequest, CodeValidation, "Request validation failed"),
		FieldErrors:   map[string]string{"id": "must be a valid UUID"},
	})
}

// validationFailed renders validator errors keyed by JSON field name
func validationFailed(c echo.Context, err error) error {
	fieldErrors := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fieldErrors[fe.Field()] = validationMessage(fe)
		}
	}
	return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		ErrorResponse: errorBody(http.StatusBadRequest, CodeValidation, "Request validation failed"),
		FieldErrors:   fieldErrors,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "alpha":
		return "must contain only letters"
	case "numeric":
		return "must contain only digits"
	default:
		return "is invalid"
	}
}

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the request validator, reporting fields by their
// JSON names
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
