package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/repository"
)

const IdempotencyKeyHeader = "Idempotency-Key"

const (
	idempotencyExistingOrderKey = "idempotency_existing_order_id"
	idempotencyKeyKey           = "idempotency_key"
	idempotencyHashKey          = "idempotency_request_hash"
)

// IdempotencyMiddleware lets a client retry order creation safely by sending an
// Idempotency-Key header. Requests without the header are not deduplicated.
// The key is stored after the order, so it covers sequential retries only: two
// concurrent requests with the same key can both create an order.
func IdempotencyMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Failed to read request body for idempotency", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])

		existingKey, err := repos.IdempotencyKey.GetByKey(c.Request.Context(), idempotencyKey)
		if err != nil {
			logger.Error("Failed to check idempotency key", zap.Error(err))
			c.Next()
			return
		}

		if existingKey != nil {
			if existingKey.RequestHash != requestHash {
				c.JSON(http.StatusConflict, gin.H{
					"error": "idempotency key conflict: same key used with different payload",
				})
				c.Abort()
				return
			}
			c.Set(idempotencyExistingOrderKey, existingKey.OrderID.Hex())
		} else {
			c.Set(idempotencyKeyKey, idempotencyKey)
			c.Set(idempotencyHashKey, requestHash)
		}

		c.Next()
	}
}

// GetIdempotencyInfo retrieves idempotency information from context
func GetIdempotencyInfo(c *gin.Context) (key string, requestHash string, existingOrderID string, isExisting bool) {
	if existingID, exists := c.Get(idempotencyExistingOrderKey); exists {
		if id, ok := existingID.(string); ok {
			return "", "", id, true
		}
	}

	key = c.GetString(idempotencyKeyKey)
	requestHash = c.GetString(idempotencyHashKey)
	return key, requestHash, "", false
}
