package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/api/handlers"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/api/middleware"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/config"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, services *service.Services, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(corsConfig(cfg.CORS)))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "SS Fresh storefront API",
			"endpoints": []string{
				"GET /api/health",
				"GET /api/products",
				"POST /api/customers",
				"POST /api/login",
				"GET /api/me",
				"GET /api/customers/lookup",
				"GET /api/customers/:id/orders",
				"POST /api/orders",
				"GET /api/orders",
				"PUT /api/orders/:id",
				"POST /api/out-of-stock",
				"GET /api/out-of-stock/analytics",
			},
		})
	})

	optionalAuth := middleware.OptionalAuth(services.Identity, logger)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Backend is live"})
		})

		products := api.Group("/products")
		{
			products.POST("", handlers.HandleCreateProduct(services.Products, logger))
			products.GET("", handlers.HandleListProducts(services.Products, logger))
			products.GET("/:id", handlers.HandleGetProduct(services.Products, logger))
			products.PUT("/:id", handlers.HandleUpdateProduct(services.Products, logger))
			products.PATCH("/:id", handlers.HandleUpdateProduct(services.Products, logger))
			products.DELETE("/:id", handlers.HandleDeleteProduct(services.Products, logger))
			products.POST("/:id/restock", handlers.HandleRestockProduct(services.Products, logger))
			products.POST("/:id/discontinue", handlers.HandleDiscontinueProduct(services.Products, logger))
		}

		api.POST("/customers", handlers.HandleRegister(services.Identity, logger))
		api.GET("/customers/lookup", handlers.HandleLookup(services.Identity, logger))
		api.GET("/customers/:id/orders", handlers.HandleCustomerOrders(services.Identity, logger))
		api.POST("/login", handlers.HandleLogin(services.Identity, logger))
		api.GET("/me", middleware.RequireAuth(services.Identity, logger), handlers.HandleMe(services.Identity, logger))

		orders := api.Group("/orders")
		{
			orders.POST("", optionalAuth, middleware.IdempotencyMiddleware(repos, logger), handlers.HandleCreateOrder(services.Orders, logger))
			orders.GET("", handlers.HandleListOrders(services.Orders, logger))
			orders.GET("/:id", handlers.HandleGetOrder(services.Orders, logger))
			orders.PUT("/:id", handlers.HandleUpdateOrder(services.Orders, logger))
			orders.GET("/:id/events", handlers.HandleOrderEvents(services.Orders, logger))
		}

		outOfStock := api.Group("/out-of-stock")
		{
			outOfStock.POST("", optionalAuth, handlers.HandleRecordSearch(services.OutOfStock, logger))
			outOfStock.GET("", handlers.HandleQuerySearches(services.OutOfStock, logger))
			outOfStock.GET("/analytics", handlers.HandleSearchAnalytics(services.OutOfStock, logger))
		}
	}

	return router
}

// corsConfig allows every origin for "*" (without credentials) or exactly the listed ones
func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.IdempotencyKeyHeader, handlers.SessionIDHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	var origins []string
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(middleware.RequestIDContextKey)),
		)
	}
}
