package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard/pulseboard-backend/errors"
	"github.com/pulseboard/pulseboard-backend/logger"
	"github.com/pulseboard/pulseboard-backend/types"
)

// ErrorHandler converts errors attached via c.Error() into the response
// envelope. Validation rejections surface their message verbatim and are
// not logged as server faults; everything else is logged with its cause
// and surfaced with a sanitized message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()

			// Client-caused validation failures are the caller's problem,
			// not ours; keep them out of the error log.
			if appError.Type != errors.ValidationError {
				logger.LogHTTPError(c, err, statusCode, string(appError.Type))
			}

			c.JSON(statusCode, types.FailureResponse(appError.Message))
			return
		}

		// Gin binding errors: malformed JSON and friends.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			c.JSON(http.StatusBadRequest, types.FailureResponse("Invalid request body"))
			return
		}

		fallback := errors.InternalServerError("Internal server error")
		logger.LogHTTPError(c, err, fallback.GetHTTPStatus(), "Unexpected server error")
		c.JSON(fallback.GetHTTPStatus(), types.FailureResponse(fallback.Message))
	}
}
