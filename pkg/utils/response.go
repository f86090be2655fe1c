package utils

import (
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
	})
}

// ErrorResponseWithCode is used for invariant violations so the UI can key
// on the code rather than the message text.
func ErrorResponseWithCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Code:    code,
	})
}
