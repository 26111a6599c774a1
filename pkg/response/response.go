// Package response writes the JSON envelopes used by every gin handler.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monastery360/service-travel/pkg/domain"
)

// Envelope is the standard success/error body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes 200 with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes 201 with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// NoContent writes 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes 400 with a validation message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Error: &ErrorBody{Code: string(domain.CodeValidation), Message: message}})
}

// Error maps err onto a status code. Unclassified errors become a generic 500.
func Error(c *gin.Context, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, Envelope{Error: &ErrorBody{
			Code:    string(domain.CodeInternal),
			Message: "internal server error",
		}})
		return
	}
	c.JSON(StatusFor(appErr.Code), Envelope{Error: &ErrorBody{Code: string(appErr.Code), Message: appErr.Message}})
}

// StatusFor returns the HTTP status used for code.
func StatusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict, domain.CodeInvalidState:
		return http.StatusConflict
	case domain.CodeUnauthorized:
		return http.StatusUnauthorized
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	case domain.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
