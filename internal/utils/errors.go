package utils

import (
	"errors"
	"net/http"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrExpiredToken = errors.New("token has expired")
var ErrNotFound = errors.New("not found")
var ErrUnauthorized = errors.New("unauthorized")
var ErrDuplicate = errors.New("already exists")

// RequestError carries an HTTP status and a response body alongside the error.
// Repository methods return it when a business rule fails and the handler
// should relay a structured message rather than a generic 500.
type RequestError struct {
	Status  int
	Message string
	Fields  map[string]any
}

func (e *RequestError) Error() string {
	return e.Message
}

// Body renders the JSON payload for the error response. Fields are merged
// next to the message so callers can attach details like conflicting
// sessions or missing prerequisites.
func (e *RequestError) Body() map[string]any {
	body := map[string]any{"message": e.Message}
	for k, v := range e.Fields {
		body[k] = v
	}
	return body
}

func NewRequestError(status int, message string) *RequestError {
	return &RequestError{Status: status, Message: message}
}

func BadRequest(message string) *RequestError {
	return NewRequestError(http.StatusBadRequest, message)
}

func NotFound(message string) *RequestError {
	return NewRequestError(http.StatusNotFound, message)
}

func Conflict(message string) *RequestError {
	return NewRequestError(http.StatusConflict, message)
}

func Forbidden(message string) *RequestError {
	return NewRequestError(http.StatusForbidden, message)
}
