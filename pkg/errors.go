package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var ExposeErrorDetails = false

func init() {
	if gin.DebugMode == gin.Mode() || gin.TestMode == gin.Mode() {
		ExposeErrorDetails = true
	}
}

// ErrorCode defines a standardized error code
type ErrorCode struct {
	Code    string
	Status  int
	Message string // default message
}

var (
	// Generic app
	ErrInvalidInputCode   = ErrorCode{Code: "APP_INVALID_INPUT", Status: http.StatusBadRequest, Message: "invalid input"}
	ErrServerCode         = ErrorCode{Code: "APP_INTERNAL", Status: http.StatusInternalServerError, Message: "internal server error"}
	ErrRecordNotFoundCode = ErrorCode{Code: "APP_NOT_FOUND", Status: http.StatusNotFound, Message: "record not found"}

	// Business/domain rules
	ErrOrderTerminalCode       = ErrorCode{Code: "ORDER_STATE_TERMINAL", Status: http.StatusBadRequest, Message: "order is in a terminal state"}
	ErrPaymentNotCompletedCode = ErrorCode{Code: "PAYMENT_NOT_COMPLETED", Status: http.StatusBadRequest, Message: "payment not completed"}

	// Store layer
	ErrStoreUnknownCode   = ErrorCode{Code: "STORE_UNKNOWN", Status: http.StatusInternalServerError, Message: "store error"}
	ErrStoreDuplicateCode = ErrorCode{Code: "STORE_DUPLICATE", Status: http.StatusConflict, Message: "duplicate record"}
)

type AppError struct {
	Code    ErrorCode
	Message string // public-facing message
	Cause   error  // internal cause (wrapped)
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrorCode, msg string, cause error) error {
	return AppError{Code: code, Message: msg, Cause: cause}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr AppError
	return errors.As(err, &appErr) && appErr.Code.Code == code.Code
}

// ErrorResponse defines the standardized error response format
type ErrorResponse struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ToErrorResponse converts an error into an ErrorResponse, logging details and optionally exposing error messages.
// If the error is not an AppError, it is converted to a generic 500 error.
func ToErrorResponse(logger *zap.Logger, traceID string, err error) ErrorResponse {
	var appErr AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			Status:  appErr.Code.Status,
			Code:    appErr.Code.Code,
			Message: appErr.Message,
		}
		logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
		if ExposeErrorDetails {
			resp.Details = err.Error()
		}
		return resp
	}
	// Unknown error : 500
	resp := ErrorResponse{
		Status:  ErrServerCode.Status,
		Code:    ErrServerCode.Code,
		Message: ErrServerCode.Message,
	}
	logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
	if ExposeErrorDetails {
		resp.Details = err.Error()
	}
	return resp
}

// HandleStoreError maps mongo driver errors -> AppError with proper codes/status
func HandleStoreError(traceId string, logger *zap.Logger, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		logger.Warn("store error : no documents found", zap.String(TraceId, traceId))
		return NewAppError(ErrRecordNotFoundCode, "no documents found", err)
	}
	if mongo.IsDuplicateKeyError(err) {
		logger.Warn("store error : duplicate key", zap.String(TraceId, traceId), zap.Error(err))
		return NewAppError(ErrStoreDuplicateCode, "duplicate value violates unique index", err)
	}
	if mongo.IsTimeout(err) {
		logger.Error("store error : timeout", zap.String(TraceId, traceId), zap.Error(err))
		return NewAppError(ErrStoreUnknownCode, "store timeout", err)
	}
	logger.Error("store error : unknown", zap.String(TraceId, traceId), zap.Error(err))
	return NewAppError(ErrStoreUnknownCode, "store error", err)
}
