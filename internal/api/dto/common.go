package dto

import "github.com/hugh/go-desk/internal/apperr"

// ErrorResponse is the uniform error shape: {message} for plain failures,
// with an errors list attached only for request-schema violations.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
