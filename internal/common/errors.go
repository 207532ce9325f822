// Package common defines the error taxonomy shared by client and server
// layers of Everkeep. Components raise and propagate these values unchanged;
// only the outermost boundary (httpapi, the CLI) translates them into a
// transport-specific shape. Callers match with errors.Is against the
// sentinels; the HTTP boundary additionally reads Code/Status from *Error.
package common

import "errors"

// Sentinels for errors.Is matching across layers.
var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")

	// Token lifecycle errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// Error carries a machine-readable code, an HTTP-like status, and a
// human-readable message. It wraps one of the sentinels above so callers can
// keep using errors.Is without inspecting the struct.
type Error struct {
	Code    string
	Status  int
	Message string
	err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

// ValidationError reports malformed or out-of-range input. Recoverable by the
// caller correcting the payload; never retried automatically.
func ValidationError(msg string) *Error {
	return &Error{Code: "VALIDATION_ERROR", Status: 400, Message: msg, err: ErrValidation}
}

// AuthorizationError reports a missing permission or a failed credentials or
// account-status gate. The message is intentionally sparse.
func AuthorizationError(msg string) *Error {
	if msg == "" {
		msg = "Not authorized"
	}
	return &Error{Code: "AUTH_ERROR", Status: 401, Message: msg, err: ErrUnauthorized}
}

// NotFoundError reports a resource that is absent or not owned by the actor.
// An ownership miss and an existence miss are deliberately indistinguishable.
func NotFoundError(msg string) *Error {
	return &Error{Code: "NOT_FOUND", Status: 404, Message: msg, err: ErrNotFound}
}

// AppError reports an unexpected persistence or infrastructure failure.
// The message never exposes internal detail to the caller.
func AppError(msg string) *Error {
	return &Error{Code: "APP_ERROR", Status: 500, Message: msg, err: ErrInternal}
}
