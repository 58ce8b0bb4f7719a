package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	idempotencyPrefix    = "idempotency:v1:"
	inProgressMarker     = "__in_progress__"
)

type storedResponse struct {
	Status      int    `json:"status"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
}

// bodyCaptureWriter duplicates the response body so it can be replayed for
// repeated idempotency keys.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency gives unsafe HTTP methods at-most-once semantics by persisting
// responses in Redis keyed by the caller-supplied Idempotency-Key header. A
// repeat of a completed request replays the stored response instead of
// executing again; a repeat of an in-flight request is rejected with 409.
// Requests without the header pass through unchanged.
func Idempotency(cache *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		ctx := c.Request.Context()
		cacheKey := idempotencyPrefix + key

		cached, err := cache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cached == inProgressMarker {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate request currently processing"})
				return
			}
			var stored storedResponse
			if err := json.Unmarshal([]byte(cached), &stored); err != nil {
				logger.Warn("Failed to decode stored idempotent response", slog.String("key", key), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate request"})
				return
			}
			c.Header("X-Idempotent-Replay", "true")
			c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
			c.Abort()
			return
		}
		if err != redis.Nil {
			logger.Error("Idempotency lookup failed", slog.String("key", key), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "idempotency store failure"})
			return
		}

		ok, err := cache.SetNX(ctx, cacheKey, inProgressMarker, ttl).Result()
		if err != nil {
			logger.Error("Idempotency reservation failed", slog.String("key", key), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "idempotency reservation failure"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate request currently processing"})
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			// Do not pin a transient failure; let the caller retry the key.
			if err := cache.Del(ctx, cacheKey).Err(); err != nil {
				logger.Warn("Failed to release idempotency key", slog.String("key", key), slog.String("error", err.Error()))
			}
			return
		}

		payload, err := json.Marshal(storedResponse{
			Status:      status,
			Body:        writer.body.String(),
			ContentType: c.Writer.Header().Get("Content-Type"),
		})
		if err != nil {
			logger.Error("Failed to encode idempotent response", slog.String("key", key), slog.String("error", err.Error()))
			cache.Del(ctx, cacheKey)
			return
		}
		if err := cache.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
			logger.Error("Failed to persist idempotent response", slog.String("key", key), slog.String("error", err.Error()))
			cache.Del(ctx, cacheKey)
		}
	}
}
