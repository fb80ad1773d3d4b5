package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Collection wraps a list payload in the success envelope used by the
// uploads endpoints.
func Collection(c *gin.Context, status int, data interface{}, count int) {
	JSON(c, status, gin.H{
		"success": true,
		"data":    data,
		"count":   count,
	})
}
