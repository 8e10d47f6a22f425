package validator

import (
	"net/http"

	"brandlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Bind decodes the JSON body into v and runs struct validation. On failure it
// writes a 400 response and returns false.
func Bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := Validate(v); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return false
	}
	return true
}
