package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbowl/storefront-api/internal/usecase"
)

// Every success is {"success":true,"data":...}; every failure is
// {"success":false,"error":...}. List endpoints add "count".

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": count})
}

func respondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

// respondError maps the usecase taxonomy: NotFound -> 404, invalid input
// and business-rule violations -> 400, anything else -> 500 with a generic
// message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrUnavailable),
		errors.Is(err, usecase.ErrInvalidState),
		errors.Is(err, usecase.ErrSessionExpired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
	}
}
