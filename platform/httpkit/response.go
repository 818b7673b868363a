package httpkit

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"printshop_backend/platform/apperr"
)

// JSON writes a success payload.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// OK writes a 200 with the given payload.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes a 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error maps a domain error to an HTTP response. Unknown errors are
// returned as 500 without leaking internals.
func Error(c *gin.Context, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		status := domainErr.HTTPStatus()
		message := domainErr.Message
		if status == http.StatusInternalServerError {
			message = "internal server error"
		}
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// BadRequestError writes a 400 with the given message.
func BadRequestError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
