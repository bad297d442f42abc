package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Security & Authentication (SEC) ----

func ErrInvalidAccessKey() *AppError {
	return New("SEC_001", "Invalid access key", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("SEC_003", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SEC_004", "Nonce has already been used", http.StatusForbidden)
}

func ErrForbiddenRole() *AppError {
	return New("SEC_005", "Caller role is not authorized for this operation", http.StatusForbidden)
}

// ---- Ledger Business Logic (LGR) ----

func ErrInvalidAmount() *AppError {
	return New("LGR_001", "Invalid amount", http.StatusBadRequest)
}

func ErrInvoiceAlreadySettled() *AppError {
	return New("LGR_002", "Invoice has already been settled", http.StatusConflict)
}

func ErrMerchantInactive() *AppError {
	return New("LGR_003", "Merchant is not active", http.StatusForbidden)
}

func ErrAssetNotSupported() *AppError {
	return New("LGR_004", "Asset is not supported for this merchant", http.StatusUnprocessableEntity)
}

func ErrNativeValueMismatch() *AppError {
	return New("LGR_005", "Attached native value does not match the payment amount", http.StatusBadRequest)
}

func ErrUnexpectedNativeValue() *AppError {
	return New("LGR_006", "Native value attached to a token payment", http.StatusBadRequest)
}

func ErrTransferFailed(err error) *AppError {
	return Wrap("LGR_007", "Asset transfer failed", http.StatusBadGateway, err)
}

func ErrUnexpectedAmountReceived() *AppError {
	return New("LGR_008", "Received amount does not match the requested amount", http.StatusBadGateway)
}

func ErrNoBalance() *AppError {
	return New("LGR_009", "No balance to withdraw", http.StatusUnprocessableEntity)
}

func ErrInsufficientBalance() *AppError {
	return New("LGR_010", "Requested amount exceeds available balance", http.StatusUnprocessableEntity)
}

func ErrOperationInProgress() *AppError {
	return New("LGR_011", "Another settlement operation is in progress", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("LGR_012", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Administration & Custody (ADM) ----

func ErrInvalidTarget() *AppError {
	return New("ADM_001", "Invalid rescue target or amount", http.StatusBadRequest)
}

func ErrAmountExceedsFree() *AppError {
	return New("ADM_002", "Amount exceeds the free (unreserved) custody balance", http.StatusUnprocessableEntity)
}

func ErrNoOpChange() *AppError {
	return New("ADM_003", "New value is identical to the current value", http.StatusBadRequest)
}

func ErrInvalidPercentage() *AppError {
	return New("ADM_004", "Commission percentage outside the allowed range", http.StatusBadRequest)
}

func ErrInvalidReceiver() *AppError {
	return New("ADM_005", "Invalid receiver address", http.StatusBadRequest)
}

func ErrReceiverNotConfigured() *AppError {
	return New("ADM_006", "Commission receiver is not configured", http.StatusConflict)
}

func ErrMerchantExists() *AppError {
	return New("ADM_007", "Merchant is already registered", http.StatusConflict)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrAccountingInconsistent signals that custody holds less than the
// tracked merchant-owed total for an asset. This is an operator-facing
// invariant violation, not a caller mistake; the rescue path halts on it.
func ErrAccountingInconsistent() *AppError {
	return New("SYS_010", "Custody balance below tracked locked total", http.StatusInternalServerError)
}

// ErrCommissionNotConfigured signals a ledger whose commission settings
// row was never seeded. Payments cannot be priced without it.
func ErrCommissionNotConfigured() *AppError {
	return New("SYS_011", "Commission settings are not configured", http.StatusInternalServerError)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("LGR_001", message, http.StatusBadRequest)
}
