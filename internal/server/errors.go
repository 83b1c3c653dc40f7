package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	analysisdomain "github.com/enervue/enervue/internal/analysis/domain"
	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
	catalogdomain "github.com/enervue/enervue/internal/catalog/domain"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	estimatedomain "github.com/enervue/enervue/internal/estimate/domain"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	scenariodomain "github.com/enervue/enervue/internal/scenario/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, apikeydomain.ErrInvalidUser):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "rate limited",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case isPropertyValidationError(err),
		isDeviceValidationError(err),
		isReadingValidationError(err),
		isIDValidationError(err),
		errors.Is(err, apikeydomain.ErrInvalidName),
		errors.Is(err, apikeydomain.ErrInvalidKeyID):
		return true
	default:
		return false
	}
}

func isPropertyValidationError(err error) bool {
	switch {
	case errors.Is(err, propertydomain.ErrInvalidName),
		errors.Is(err, propertydomain.ErrInvalidAddress),
		errors.Is(err, propertydomain.ErrInvalidCity),
		errors.Is(err, propertydomain.ErrInvalidRegion),
		errors.Is(err, propertydomain.ErrInvalidPropertyType),
		errors.Is(err, propertydomain.ErrInvalidSquareMeters),
		errors.Is(err, propertydomain.ErrInvalidOccupants):
		return true
	default:
		return false
	}
}

func isDeviceValidationError(err error) bool {
	switch {
	case errors.Is(err, devicedomain.ErrInvalidName),
		errors.Is(err, devicedomain.ErrInvalidCategory),
		errors.Is(err, devicedomain.ErrInvalidWattage),
		errors.Is(err, devicedomain.ErrInvalidDailyRuntime),
		errors.Is(err, devicedomain.ErrInvalidWeeklyRuntime),
		errors.Is(err, devicedomain.ErrInvalidStandby):
		return true
	default:
		return false
	}
}

func isReadingValidationError(err error) bool {
	switch {
	case errors.Is(err, readingdomain.ErrInvalidGranularity),
		errors.Is(err, readingdomain.ErrEmptyContent),
		errors.Is(err, readingdomain.ErrNoValidRows),
		errors.Is(err, readingdomain.ErrTooManyRows):
		return true
	default:
		return false
	}
}

func isIDValidationError(err error) bool {
	switch {
	case errors.Is(err, propertydomain.ErrInvalidID),
		errors.Is(err, devicedomain.ErrInvalidID),
		errors.Is(err, readingdomain.ErrInvalidID),
		errors.Is(err, estimatedomain.ErrInvalidID),
		errors.Is(err, analysisdomain.ErrInvalidID),
		errors.Is(err, scenariodomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, propertydomain.ErrNotFound),
		errors.Is(err, devicedomain.ErrNotFound),
		errors.Is(err, devicedomain.ErrPropertyNotFound),
		errors.Is(err, readingdomain.ErrPropertyNotFound),
		errors.Is(err, estimatedomain.ErrNotFound),
		errors.Is(err, estimatedomain.ErrPropertyNotFound),
		errors.Is(err, analysisdomain.ErrPropertyNotFound),
		errors.Is(err, scenariodomain.ErrScenarioNotFound),
		errors.Is(err, scenariodomain.ErrPropertyNotFound),
		errors.Is(err, catalogdomain.ErrTemplateNotFound),
		errors.Is(err, apikeydomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "empty_content":
		return "file content is empty"
	case "no_valid_rows":
		return "no rows could be imported"
	case "too_many_rows":
		return "file exceeds the import row limit"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog buckets errors for the request log so dashboards can
// split client mistakes from server faults.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	switch {
	case asValidationErrors(err) != nil, isValidationError(err):
		return "validation", validationErrorCode(err)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return "auth", err.Error()
	case isNotFoundError(err):
		return "not_found", "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited", "rate_limited"
	default:
		return "internal", "internal_error"
	}
}
