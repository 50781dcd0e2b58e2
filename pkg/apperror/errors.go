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

// ---- Configuration (CFG) ----

// ErrMissingCredential signals a required processor/LMS credential is absent.
// The call is never attempted when this is returned.
func ErrMissingCredential(name string) *AppError {
	return New("CFG_001", fmt.Sprintf("required credential %s is not configured", name), http.StatusInternalServerError)
}

// ---- Signature verification (SIG) ----

func ErrInvalidSignature() *AppError {
	return New("SIG_001", "Webhook signature verification failed", http.StatusBadRequest)
}

func ErrMalformedNotification() *AppError {
	return New("SIG_002", "Notification payload matches no recognized shape", http.StatusBadRequest)
}

// ---- Payment gateway (GW) ----

func ErrGatewayTransport(err error) *AppError {
	return Wrap("GW_001", "Payment processor unreachable", http.StatusBadGateway, err)
}

func ErrPaymentDeclined(message string) *AppError {
	if message == "" {
		message = "The payment was declined by the processor"
	}
	return New("GW_002", message, http.StatusPaymentRequired)
}

// ---- Payments (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_001", "Invalid amount", http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrDuplicateReference() *AppError {
	return New("PAY_003", "Reference code already used", http.StatusConflict)
}

// ---- Provisioning (PRV) ----

// ErrProvisioningExhausted reports that every provisioning attempt failed.
// The platform account remains valid, so this is a 200-class warning for
// internal callers and only ever surfaces through operational channels.
func ErrProvisioningExhausted(attempts int, err error) *AppError {
	return Wrap("PRV_001", fmt.Sprintf("LMS provisioning failed after %d attempts", attempts), http.StatusServiceUnavailable, err)
}

func ErrProvisioningQueueFull() *AppError {
	return New("PRV_002", "Provisioning queue is full", http.StatusServiceUnavailable)
}

// ---- Operator auth (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
