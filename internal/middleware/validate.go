package middleware

import (
	"net/http" // HTTP status codes

	"stock_management/internal/validation" // Field schemas

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/gin-gonic/gin/binding" // Body binding
)

// Validate rejects requests whose JSON body does not satisfy schema. The body
// is cached so the handler can bind it again.
func Validate(v *validation.Validator, schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil || body == nil {
			// Malformed JSON or not an object
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if errs := v.Validate(schema, body); len(errs) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"errors": errs, // One entry per rejected field
			})
			return
		}
		c.Next() // Proceed to the handler
	}
}
