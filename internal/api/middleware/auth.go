package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/auth"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

const ClaimsContextKey = "customer_claims"

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// storefront has always split on the first space, so any scheme word is accepted.
func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(identity *service.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := identity.Authenticate(bearerToken(c))
		if err != nil {
			logger.Debug("Rejected bearer token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches the claims of a valid bearer token and otherwise lets the
// request through anonymously. An invalid token is ignored, not rejected.
func OptionalAuth(identity *service.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			claims, err := identity.Authenticate(token)
			if err != nil {
				logger.Debug("Ignoring invalid bearer token", zap.String("path", c.Request.URL.Path))
			} else {
				c.Set(ClaimsContextKey, claims)
			}
		}
		c.Next()
	}
}

// GetClaimsFromContext retrieves the verified token claims from the Gin context
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	claims, exists := c.Get(ClaimsContextKey)
	if !exists {
		return nil, false
	}

	cl, ok := claims.(*auth.Claims)
	return cl, ok
}
