package respond

import (
	"github.com/gin-gonic/gin"

	"journal-backend/internal/shared/telemetry"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error sends the standardized error envelope and logs the failure.
// detail carries an upstream store/provider message when one exists.
func Error(c *gin.Context, status int, message, detail string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if detail != "" {
		fields["detail"] = detail
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}
