package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricestats/internal/domain/dto"
	"github.com/guttosm/pricestats/internal/logger"
)

// ErrorHandler turns errors pushed with c.Error into a JSON 500 response
// when the handler did not write one itself.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	last := c.Errors.Last()
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Str("request_id", toString(rid)).
		Str("path", c.Request.URL.Path).
		Err(last.Err).
		Msg("request failed")

	if c.Writer.Written() {
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError stops the chain and writes a standardized ErrorResponse.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
