package errors

import "net/http"

// Kind classifies economy errors so callers can branch without string
// matching.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindInvalidAmount       Kind = "INVALID_AMOUNT"
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE"
	KindConflict            Kind = "CONFLICT"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindInconsistent        Kind = "INCONSISTENT"
	KindInternal            Kind = "INTERNAL"
)

// AppError is a custom error type that includes an HTTP status code
// and an economy error kind.
type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Helper constructors, one per kind
func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, KindNotFound, msg)
}

func InvalidAmount(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInvalidAmount, msg)
}

func InsufficientBalance(msg string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, KindInsufficientBalance, msg)
}

func Conflict(msg string) *AppError {
	return NewAppError(http.StatusConflict, KindConflict, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, KindUnauthorized, msg)
}

func Inconsistent(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, KindInconsistent, msg)
}

func BadRequest(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, KindInvalidAmount, msg)
}

func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, KindInternal, msg)
}

// IsKind reports whether err is an *AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Kind == kind
}
