package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries an HTTP status alongside a user-facing message. The wrapped
// error (if any) is for server-side logs only and never reaches the client.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Não autorizado."
	}
	return &Error{Code: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Acesso negado."
	}
	return &Error{Code: http.StatusForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Message: message}
}

func Internal(message string, err error) *Error {
	if message == "" {
		message = "Erro interno do servidor."
	}
	return &Error{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// Status resolves the HTTP status for any error. Unknown errors are treated
// as internal failures.
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// IsConflict reports whether an error denotes a booking slot collision.
func IsConflict(err error) bool {
	return Status(err) == http.StatusConflict
}

// Message resolves the client-safe message for any error. Internal details
// are never leaked.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Erro interno do servidor."
}
