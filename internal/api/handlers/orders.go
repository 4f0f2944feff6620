package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/api/middleware"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

// HandleCreateOrder handles POST /api/orders. A valid bearer token decides the
// customer; a replayed Idempotency-Key returns the order created the first time.
func HandleCreateOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, requestHash, existingOrderID, isExisting := middleware.GetIdempotencyInfo(c)
		if isExisting {
			id, err := primitive.ObjectIDFromHex(existingOrderID)
			if err == nil {
				order, err := orders.GetStored(c.Request.Context(), id)
				if err == nil {
					logger.Info("Returning existing order for idempotency key", zap.String("order_id", existingOrderID))
					c.JSON(http.StatusOK, order)
					return
				}
				logger.Warn("Idempotency key points at a missing order", zap.String("order_id", existingOrderID), zap.Error(err))
			}
		}

		var req service.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		opts := service.CreateOrderOptions{IdempotencyKey: key, RequestHash: requestHash}
		if claims, ok := middleware.GetClaimsFromContext(c); ok {
			if id, err := claims.CustomerObjectID(); err == nil {
				opts.TokenCustomer = id
			}
		}

		order, err := orders.Create(c.Request.Context(), req, opts)
		if err != nil {
			respondError(c, logger, err, "Failed to create order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleListOrders handles GET /api/orders
func HandleListOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// HandleGetOrder handles GET /api/orders/:id
func HandleGetOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "Failed to get order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleUpdateOrder handles PUT /api/orders/:id
func HandleUpdateOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}

		order, err := orders.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, logger, err, "Failed to update order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// HandleOrderEvents handles GET /api/orders/:id/events
func HandleOrderEvents(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := orders.Events(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err, "Failed to fetch order events")
			return
		}
		c.JSON(http.StatusOK, events)
	}
}
