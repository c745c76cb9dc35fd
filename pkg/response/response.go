package response

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response. An optional cause is logged and returned in
// the error field.
func Error(c *gin.Context, code int, message string, errs ...error) {
	resp := Response{
		Code:    code,
		Message: message,
	}
	if len(errs) > 0 && errs[0] != nil {
		resp.Error = errs[0].Error()
		_ = c.Error(errs[0])
		if code >= 500 {
			log.Printf("[API] %s %s: %s: %v", c.Request.Method, c.Request.URL.Path, message, errs[0])
		}
	}
	c.JSON(code, resp)
}
