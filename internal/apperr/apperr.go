// Package apperr defines the closed error taxonomy shared by every endpoint.
// Any new failure mode must map onto one of the seven codes below.
package apperr

import "net/http"

type Code string

const (
	CodeAuthRequired Code = "AUTH_REQUIRED"
	CodeAuthInvalid  Code = "AUTH_INVALID"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeBadRequest   Code = "BAD_REQUEST"
)

type Error struct {
	Status  int
	Code    Code
	Message string
	Detail  interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func AuthRequired(message string) *Error {
	return New(http.StatusUnauthorized, CodeAuthRequired, message)
}

func AuthInvalid(message string) *Error {
	return New(http.StatusUnauthorized, CodeAuthInvalid, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, CodeForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, CodeConflict, message)
}

func Validation(message string, detail interface{}) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: CodeValidation, Message: message, Detail: detail}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, CodeBadRequest, message)
}

// Internal covers unexpected failures (storage errors and the like). The
// taxonomy is closed, so the generic fallback code rides on a 500 status.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, CodeBadRequest, message)
}
