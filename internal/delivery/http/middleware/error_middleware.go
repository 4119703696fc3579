package middleware

import (
	"errors"
	"net/http"

	"trucking-quote-backend/internal/delivery/http/response"
	"trucking-quote-backend/pkg/apperror"
	"trucking-quote-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			// Handlers log their own diagnostics when they assign an error ID
			if appErr.Code >= http.StatusInternalServerError && appErr.ErrorID == "" {
				appErr.ErrorID = uuid.NewString()
				logger.Log.ErrorContext(c.Request.Context(), "request failed",
					"status", appErr.Code,
					"error_id", appErr.ErrorID,
					"error", appErr.Err,
					"request_id", GetRequestID(c),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, &response.Response{
				Details: appErr.Details,
				Fields:  appErr.Fields,
				ErrorID: appErr.ErrorID,
			})
			return
		}

		// Never expose internal error details to clients
		errorID := uuid.NewString()
		logger.Log.ErrorContext(c.Request.Context(), "internal server error",
			"error_id", errorID,
			"error", err,
			"request_id", GetRequestID(c),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", &response.Response{ErrorID: errorID})
	}
}
