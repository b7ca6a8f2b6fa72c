package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"stock_management/internal/domain"     // Workflow errors
	"stock_management/internal/middleware" // Request IDs
	"stock_management/internal/validation" // Field error shape

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/gin-gonic/gin/binding" // Body binding
	"github.com/shopspring/decimal"    // Money encoding
	"github.com/sirupsen/logrus"       // Structured logging
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true // Prices and totals go out as JSON numbers
}

// statusOf maps a workflow error kind onto an HTTP status
func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindOutOfStock:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError is the single exit for failed requests
func respondError(c *gin.Context, err error) {
	_ = c.Error(err) // Attach for the request logger

	var e *domain.Error
	if !errors.As(err, &e) {
		e = domain.Internal("Internal server error", err)
	}
	status := statusOf(e.Kind)
	if status == http.StatusInternalServerError {
		// Store failures are logged here and never shown to the client
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c),
			"path":       c.FullPath(),
			"error":      err.Error(),
		}).Error(e.Message)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": e.Message}
	if e.Kind == domain.KindValidation && e.Field != "" {
		body["errors"] = validation.Errors{{Field: e.Field, Message: e.Message}}
	}
	c.JSON(status, body)
}

// bindBody decodes the body cached by the validation middleware into req
func bindBody(c *gin.Context, req any) bool {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"}) // Body does not fit the request type
		return false
	}
	return true
}
