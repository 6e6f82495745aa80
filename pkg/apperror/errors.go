package apperror

import (
	"fmt"
	"net/http"
)

// DefaultMessageLimit is the number of runes kept in user-facing failure messages.
const DefaultMessageLimit = 100

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

// Is matches another *AppError by code, so callers can test
// errors.Is(err, apperror.ErrSubmitInFlight()).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
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

// Truncate bounds msg to limit runes. A non-positive limit disables truncation.
func Truncate(msg string, limit int) string {
	if limit <= 0 {
		return msg
	}
	r := []rune(msg)
	if len(r) <= limit {
		return msg
	}
	return string(r[:limit])
}

// ---- Wallet session (WAL) ----

func ErrNoProviderFound() *AppError {
	return New("WAL_001", "No wallet provider found", http.StatusServiceUnavailable)
}

func ErrNetworkMismatch(err error) *AppError {
	return Wrap("WAL_002", "Wallet is on the wrong network; switch requested", http.StatusConflict, err)
}

func ErrUserRejected(err error) *AppError {
	return Wrap("WAL_003", "Request rejected in wallet", http.StatusBadRequest, err)
}

func ErrUnknownNetwork(err error) *AppError {
	return Wrap("WAL_004", "Wallet could not register the network", http.StatusBadGateway, err)
}

func ErrWalletNotConnected() *AppError {
	return New("WAL_005", "Wallet not connected; connection requested, resubmit once connected", http.StatusConflict)
}

func ErrConnectInFlight() *AppError {
	return New("WAL_006", "A wallet connection request is already pending", http.StatusConflict)
}

func ErrSwitchInFlight() *AppError {
	return New("WAL_007", "A network switch request is already pending", http.StatusConflict)
}

// ---- Donation lifecycle (DON) ----

func ErrSubmitInFlight() *AppError {
	return New("DON_001", "A donation is already in progress", http.StatusConflict)
}

func ErrInvalidAmount(err error) *AppError {
	return Wrap("DON_002", "Invalid amount", http.StatusBadRequest, err)
}

func ErrOnChainCallReverted(reason string, err error) *AppError {
	msg := "Transaction reverted"
	if reason != "" {
		msg += ": " + reason
	}
	return Wrap("DON_003", Truncate(msg, DefaultMessageLimit), http.StatusUnprocessableEntity, err)
}

func ErrStillPending(err error) *AppError {
	return Wrap("DON_004", "Transaction not confirmed in time; it may still be pending", http.StatusGatewayTimeout, err)
}

func ErrNotFound(entity string) *AppError {
	return New("DON_005", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Chain reads (RPC) ----

func ErrRPCUnavailable(err error) *AppError {
	return Wrap("RPC_001", "Chain RPC unavailable", http.StatusServiceUnavailable, err)
}

func ErrProviderFailure(err error) *AppError {
	return Wrap("RPC_002", "Wallet provider request failed", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_002", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a DON_002-style validation error.
func Validation(message string) *AppError {
	return New("DON_002", message, http.StatusBadRequest)
}
