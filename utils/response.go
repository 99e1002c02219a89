package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}

// JSONFieldErrors sends a bare field -> errors mapping, the shape bid forms render.
func JSONFieldErrors(c *gin.Context, status int, fieldErrors any) {
	c.JSON(status, fieldErrors)
}

// TextError aborts the request with a plain-text body.
func TextError(c *gin.Context, status int, message string) {
	c.String(status, message)
	if status >= http.StatusBadRequest {
		c.Abort()
	}
}
