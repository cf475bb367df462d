package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stabletide/internal/domain/dto"
)

// ErrorHandler turns errors attached with c.Error into a 500 ErrorResponse
// when the handler chain has not written a response yet.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", c.Errors.Last().Err))
}

// AbortWithError stops the chain and writes status with a JSON ErrorResponse.
// err may be nil. The error is also recorded on the context for RequestLogger.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	AbortWithResponse(c, status, dto.NewErrorResponse(message, err))
	if err != nil {
		_ = c.Error(err)
	}
}

// AbortWithResponse is AbortWithError for a pre-built response (extra fields
// such as Fields or UpstreamStatus already set).
func AbortWithResponse(c *gin.Context, status int, resp dto.ErrorResponse) {
	c.AbortWithStatusJSON(status, resp)
}
