package utils

import "github.com/gofiber/fiber/v2"

type ErrorKind int

const (
	// KindAuthentication covers missing and invalid credentials alike.
	KindAuthentication ErrorKind = iota
	// KindAccountNotFound means the credential is valid but no local
	// account exists for its subject. Reported distinctly from
	// KindAuthentication so clients can tell "log in again" from
	// "finish registration".
	KindAccountNotFound
	KindPermissionDenied
	KindValidation
	KindNotFound
	KindStore
)

// AppError pairs a stable user-facing message with an optional diagnostic
// cause. The message is safe in any environment; the cause is surfaced only
// in development mode (see Fail in responses.go).
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Status() int {
	switch e.Kind {
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAccountNotFound, KindNotFound:
		return fiber.StatusNotFound
	case KindPermissionDenied:
		return fiber.StatusForbidden
	case KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func AuthenticationError(message string, cause error) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message, Err: cause}
}

func AccountNotFoundError(message string) *AppError {
	return &AppError{Kind: KindAccountNotFound, Message: message}
}

func PermissionError(message string) *AppError {
	return &AppError{Kind: KindPermissionDenied, Message: message}
}

func ValidationError(message string, cause error) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Err: cause}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func StoreError(message string, cause error) *AppError {
	return &AppError{Kind: KindStore, Message: message, Err: cause}
}
