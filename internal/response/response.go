package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adota-pet/service-adoption/internal/domain"
)

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Paginated writes a 200 response with items and paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Error maps a domain error to its HTTP status. Internal errors are
// masked behind a generic message.
func Error(c *gin.Context, err error) {
	switch domain.CodeOf(err) {
	case domain.CodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.CodeConflict, domain.CodeInvalidState:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case domain.CodeUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case domain.CodeForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
