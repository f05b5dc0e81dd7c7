package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rvmoura/pagamentos-api/internal/services"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Not-found and duplicate-key get their own codes, any other business-rule
// violation is a 422 and everything else surfaces as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContractNotFound),
		errors.Is(err, services.ErrCreditorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateKey):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDeleteNotAllowed):
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": err.Error()})
	case services.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
