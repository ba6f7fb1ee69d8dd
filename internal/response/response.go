package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turfmanager/service-booking/internal/domain"
)

// envelope is the standard JSON body for all responses.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errBody    `json:"error,omitempty"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response wrapping a page of items.
func Paginated[T any](c *gin.Context, items []T, total int64, page, limit int) {
	Success(c, domain.NewPaginatedResult(items, total, page, limit))
}

// BadRequest writes a 400 response with a validation error body.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errBody{Code: string(domain.CodeValidation), Message: message},
	})
}

// Error maps a domain error to its HTTP status and writes it. Conflicts get
// 409 with the specific message so the client can distinguish a slot clash
// from a generic failure.
func Error(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	status := http.StatusInternalServerError
	message := err.Error()

	switch code {
	case domain.CodeValidation:
		status = http.StatusBadRequest
	case domain.CodeConflict:
		status = http.StatusConflict
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeInternal:
		message = "internal server error"
	}

	c.JSON(status, envelope{
		Success: false,
		Error:   &errBody{Code: string(code), Message: message},
	})
}
