package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/api/middleware"
	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/service"
)

const SessionIDHeader = "X-Session-ID"

// HandleRecordSearch handles POST /api/out-of-stock
func HandleRecordSearch(outOfStock *service.OutOfStockService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RecordSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadBody(c)
			return
		}
		req.UserAgent = c.Request.UserAgent()
		req.IPAddress = c.ClientIP()
		req.SessionID = c.GetHeader(SessionIDHeader)
		if claims, ok := middleware.GetClaimsFromContext(c); ok {
			if id, err := claims.CustomerObjectID(); err == nil {
				req.CustomerID = id
			}
		}

		search, err := outOfStock.Record(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "Failed to track search")
			return
		}
		logger.Info("Out-of-stock search tracked",
			zap.String("search_term", search.SearchTerm),
			zap.Bool("customer", search.CustomerID != nil),
		)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Search term tracked"})
	}
}

// HandleQuerySearches handles GET /api/out-of-stock?searchTerm=&page=&limit=
func HandleQuerySearches(outOfStock *service.OutOfStockService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		result, err := outOfStock.Query(c.Request.Context(), c.Query("searchTerm"), page, limit)
		if err != nil {
			respondError(c, logger, err, "Failed to fetch out-of-stock searches")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// HandleSearchAnalytics handles GET /api/out-of-stock/analytics?days=
func HandleSearchAnalytics(outOfStock *service.OutOfStockService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		days := service.DefaultAnalyticsDays
		if n, err := strconv.Atoi(c.Query("days")); err == nil {
			days = n
		}

		result, err := outOfStock.Analytics(c.Request.Context(), days)
		if err != nil {
			respondError(c, logger, err, "Failed to fetch analytics")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
