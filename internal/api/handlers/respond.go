package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/api/middleware"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/pkg/errors"
)

// respondError writes {"error": message} with the status the error maps to.
// Unexpected errors are logged and reported as "internal error".
func respondError(c *gin.Context, logger *zap.Logger, err error, action string) {
	status := errors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(action,
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(middleware.RequestIDContextKey)),
		)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBadBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}
