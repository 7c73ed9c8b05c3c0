package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 response with the payload as the body. Success payloads go
// out bare; only failures are wrapped in the error envelope.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// JSON writes a response with an explicit status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
