package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/api/middleware"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

// HandleRegister handles POST /api/customers
func HandleRegister(identity *service.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		customer, err := identity.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "Registration failed")
			return
		}
		c.JSON(http.StatusOK, service.NewCustomerView(customer))
	}
}

// HandleLogin handles POST /api/login
func HandleLogin(identity *service.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		token, customer, err := identity.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "Login failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  service.NewCustomerView(customer),
		})
	}
}

// HandleMe handles GET /api/me. Requires RequireAuth.
func HandleMe(identity *service.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetClaimsFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No token"})
			return
		}

		customer, err := identity.Me(c.Request.Context(), claims)
		if err != nil {
			respondError(c, logger, err, "Failed to load current customer")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": customer})
	}
}

// HandleCustomerOrders handles GET /api/customers/:id/orders
func HandleCustomerOrders(identity *service.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := identity.RecentOrders(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "Failed to fetch customer orders")
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// HandleLookup handles GET /api/customers/lookup?phone=&name=
func HandleLookup(identity *service.IdentityService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := identity.Lookup(c.Request.Context(), c.Query("phone"), c.Query("name"))
		if err != nil {
			respondError(c, logger, err, "Lookup failed")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
