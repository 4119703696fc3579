package response

import (
	"trucking-quote-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Fields    []string    `json:"fields,omitempty"`
	ErrorID   string      `json:"error_id,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends a failure response. Only the message is required; the rest
// is copied from resp when given.
func Error(c *gin.Context, code int, message string, resp *Response) {
	out := Response{}
	if resp != nil {
		out = *resp
	}
	out.Success = false
	out.Error = message
	out.RequestID = requestID(c)
	c.JSON(code, out)
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
