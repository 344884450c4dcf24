package http

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/core/port"
	"taskapp/pkg/tracing"
)

type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// ResponseCache keeps successful GET responses for a short TTL, keyed
// per user so one tenant never sees another's cached payload.
type ResponseCache struct {
	store   port.CacheRepository
	config  map[string]ResponseCacheConfig
	metrics *tracing.AppMetrics
}

type CachedResponse struct {
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
}

func NewResponseCache(store port.CacheRepository, metrics *tracing.AppMetrics) *ResponseCache {
	configs := map[string]ResponseCacheConfig{
		"/api/:user_id/tasks": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
		"default": {
			TTL:     1 * time.Second,
			Enabled: false,
		},
	}

	return &ResponseCache{
		store:   store,
		config:  configs,
		metrics: metrics,
	}
}

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.AuthUserID(c)

		if c.Request.Method != http.MethodGet {
			c.Next()

			// Any mutation makes this user's cached reads stale.
			if c.Writer.Status() < http.StatusBadRequest {
				rc.store.DeleteByPrefix(c.Request.Context(), rc.userPrefix(userID))
			}
			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		config, exists := rc.config[path]
		if !exists {
			config = rc.config["default"]
		}

		if !config.Enabled {
			c.Next()
			return
		}

		cacheKey := rc.generateCacheKey(c, userID, path)

		if data, err := rc.store.Get(c.Request.Context(), cacheKey); err == nil && data != nil {
			var cached CachedResponse

			if err := json.Unmarshal(data, &cached); err == nil {
				_, span := tracing.CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
					attribute.String("cache.key", cacheKey),
					attribute.String("cache.path", path),
				})
				span.End()

				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(path)
				}

				c.Data(cached.StatusCode, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(path)
		}

		writer := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() == http.StatusOK {
			cached := CachedResponse{
				StatusCode: writer.Status(),
				Body:       writer.body.Bytes(),
			}

			if data, err := json.Marshal(cached); err == nil {
				rc.store.Set(c.Request.Context(), cacheKey, data, config.TTL)
			}
		}
	}
}

func (rc *ResponseCache) userPrefix(userID string) string {
	return "resp:" + userID + ":"
}

func (rc *ResponseCache) generateCacheKey(c *gin.Context, userID, path string) string {
	raw := c.Request.URL.Path + "?" + c.Request.URL.RawQuery

	return rc.userPrefix(userID) + fmt.Sprintf("%x", md5.Sum([]byte(raw)))
}
