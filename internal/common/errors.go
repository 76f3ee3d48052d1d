package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., email already registered
	ErrInternalServer = errors.New("internal server error")
	ErrValidation     = errors.New("validation failed")

	// Authentication failures. All of them surface to the client as a
	// uniform 401; the distinct values exist for server-side diagnostics
	// and test assertions only.
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrNoCredential      = fmt.Errorf("no credential presented: %w", ErrUnauthorized)
	ErrInvalidCredential = fmt.Errorf("invalid or expired credential: %w", ErrUnauthorized)
	ErrAccountGone       = fmt.Errorf("account for credential no longer exists: %w", ErrUnauthorized)
	ErrStaleCredential   = fmt.Errorf("credential predates a password change: %w", ErrUnauthorized)

	ErrInvalidResetToken = errors.New("reset token is invalid or has expired")
	ErrDeliveryFailed    = errors.New("failed to deliver email")
	ErrTooManyRequests   = errors.New("too many requests")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidResetToken) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrTooManyRequests) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, ErrDeliveryFailed) {
		return http.StatusBadGateway
	}

	// pgx unique violation that escaped the repository layer
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}
