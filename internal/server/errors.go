package server

import (
	"errors"
	"net/http"
	"strings"

	activitylogdomain "github.com/fiberafrica/missioncontrol/internal/activitylog/domain"
	"github.com/fiberafrica/missioncontrol/internal/auth"
	"github.com/fiberafrica/missioncontrol/internal/authorization"
	clientdomain "github.com/fiberafrica/missioncontrol/internal/client/domain"
	documentdomain "github.com/fiberafrica/missioncontrol/internal/document/domain"
	dropcabledomain "github.com/fiberafrica/missioncontrol/internal/dropcable/domain"
	fleetdomain "github.com/fiberafrica/missioncontrol/internal/fleet/domain"
	inventorydomain "github.com/fiberafrica/missioncontrol/internal/inventory/domain"
	inventoryrequestdomain "github.com/fiberafrica/missioncontrol/internal/inventoryrequest/domain"
	"github.com/fiberafrica/missioncontrol/internal/job"
	linkbuilddomain "github.com/fiberafrica/missioncontrol/internal/linkbuild/domain"
	pricesheetdomain "github.com/fiberafrica/missioncontrol/internal/pricesheet/domain"
	"github.com/fiberafrica/missioncontrol/internal/providers/storage"
	staffdomain "github.com/fiberafrica/missioncontrol/internal/staff/domain"
	"github.com/fiberafrica/missioncontrol/pkg/db"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
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

const (
	errorTypeInvalidRequest = "invalid_request_error"
	errorTypeAuthentication = "authentication_error"
	errorTypeForbidden      = "forbidden_error"
	errorTypeNotFound       = "resource_not_found"
	errorTypeConflict       = "conflict_error"
	errorTypeRateLimit      = "rate_limit_error"
	errorTypeUnavailable    = "service_unavailable_error"
	errorTypeAPI            = "api_error"
)

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

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
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
			Type:    errorTypeAPI,
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    errorTypeInvalidRequest,
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    errorTypeInvalidRequest,
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
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, errorPayload{
			Type:    errorTypeAuthentication,
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden),
		errors.Is(err, authorization.ErrInvalidRole):
		return http.StatusForbidden, errorPayload{
			Type:    errorTypeForbidden,
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		db.IsDuplicateKeyErr(err):
		return http.StatusConflict, errorPayload{
			Type:    errorTypeConflict,
			Message: "conflict",
		}
	case errors.Is(err, inventoryrequestdomain.ErrNotPending):
		return http.StatusNotFound, errorPayload{
			Type:    errorTypeNotFound,
			Message: "request not found or already processed",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    errorTypeNotFound,
			Message: "not found",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    errorTypeRateLimit,
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, storage.ErrUnavailable),
		errors.Is(err, auth.ErrNotConfigured):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    errorTypeUnavailable,
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    errorTypeAPI,
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog feeds the request logger the same type and code the
// client receives.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
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
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, job.ErrInvalidJobType),
		errors.Is(err, job.ErrInvalidWeek),
		errors.Is(err, job.ErrInvalidNotes):
		return true
	case isDropCableValidationError(err),
		isLinkBuildValidationError(err),
		isServiceCostValidationError(err),
		isClientValidationError(err),
		isStaffValidationError(err),
		isFleetValidationError(err),
		isInventoryValidationError(err),
		isInventoryRequestValidationError(err),
		isDocumentValidationError(err),
		isActivityLogValidationError(err):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, job.ErrJobNotFound),
		errors.Is(err, dropcabledomain.ErrNotFound),
		errors.Is(err, linkbuilddomain.ErrNotFound),
		errors.Is(err, pricesheetdomain.ErrNotFound),
		errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, staffdomain.ErrNotFound),
		errors.Is(err, fleetdomain.ErrNotFound),
		errors.Is(err, inventorydomain.ErrNotFound),
		errors.Is(err, inventoryrequestdomain.ErrNotFound),
		errors.Is(err, documentdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	var target error = err
	for {
		next := errors.Unwrap(target)
		if next == nil {
			break
		}
		target = next
	}
	return target.Error()
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
	case "invalid_update":
		return "at least one field is required"
	default:
		return "invalid value"
	}
}

func isActivityLogValidationError(err error) bool {
	switch err {
	case activitylogdomain.ErrInvalidAction,
		activitylogdomain.ErrInvalidLimit:
		return true
	default:
		return false
	}
}
