package dto

import "github.com/gofiber/fiber/v2"

// APIError is returned by services and handlers and rendered by the central
// error handler into an ErrorResponse.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Response() ErrorResponse {
	errs := e.Errors
	if errs == nil {
		errs = []string{}
	}
	return ErrorResponse{
		StatusCode: e.StatusCode,
		Message:    e.Message,
		Success:    false,
		Errors:     errs,
	}
}

func NewAPIError(statusCode int, message string, errs ...string) *APIError {
	if message == "" {
		message = "Something went wrong"
	}
	return &APIError{StatusCode: statusCode, Message: message, Errors: errs}
}

func ErrBadRequest(message string) *APIError {
	return NewAPIError(fiber.StatusBadRequest, message)
}

func ErrUnauthorized(message string) *APIError {
	return NewAPIError(fiber.StatusUnauthorized, message)
}

func ErrNotFound(message string) *APIError {
	return NewAPIError(fiber.StatusNotFound, message)
}

func ErrConflict(message string) *APIError {
	return NewAPIError(fiber.StatusConflict, message)
}

func ErrInternal(message string) *APIError {
	return NewAPIError(fiber.StatusInternalServerError, message)
}
