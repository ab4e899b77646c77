package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/config"
)

// cachedResponse is the value stored in Redis for one cached response.
type cachedResponse struct {
	Status int         `json:"s"`
	Header http.Header `json:"h"`
	Body   []byte      `json:"b"`
}

// bodyRecorder forwards writes to the client and keeps a copy of up to
// limit bytes.  overflow is set once the body exceeds the limit; such
// responses are not cached.
type bodyRecorder struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	limit    int
	overflow bool
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if !w.overflow {
		if w.limit > 0 && w.buf.Len()+len(b) > w.limit {
			w.overflow = true
			w.buf.Reset()
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// replayHeaders are the response headers that describe the cached body.
// Headers set per request by other middleware (request id, rate limit
// counters) are neither stored nor replayed.
var replayHeaders = []string{
	echo.HeaderContentType,
	echo.HeaderContentEncoding,
	"Content-Language",
	"ETag",
	echo.HeaderLastModified,
	echo.HeaderVary,
}

// contentHeaders copies the replayHeaders present in h.
func contentHeaders(h http.Header) http.Header {
	out := http.Header{}
	for _, k := range replayHeaders {
		for _, v := range h.Values(k) {
			out.Add(k, v)
		}
	}
	return out
}

// cacheKey builds the Redis key for a request from the configured
// strategy.  The variable part is hashed so keys stay short.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", c.Path()}
	case "method_route":
		parts = []string{"method", r.Method, "route", c.Path()}
	case "method_route_query":
		parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.RawQuery}
	default: // route_query
		parts = []string{"route", c.Path(), "q", r.URL.RawQuery}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// NewRedisCache caches successful responses of the configured methods in
// Redis together with their content headers.
// Without a Redis client or with caching disabled it is a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client, logger *zap.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg, c)

			if hit, ok := lookup(ctx, rdb, key, logger); ok {
				h := c.Response().Header()
				for k, vals := range contentHeaders(hit.Header) {
					h[k] = vals
				}
				h.Set("X-Cache", "HIT")
				c.Response().WriteHeader(hit.Status)
				_, err := c.Response().Write(hit.Body)
				return err
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			if rec.status != http.StatusOK || rec.overflow {
				return nil
			}

			entry := cachedResponse{Status: rec.status, Header: contentHeaders(c.Response().Header()), Body: rec.buf.Bytes()}
			payload, err := json.Marshal(entry)
			if err != nil {
				return nil
			}
			// the request context may already be cancelled once the response is written
			if err := rdb.Set(context.Background(), key, payload, ttl).Err(); err != nil {
				logger.Warn("cache: store failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}

func lookup(ctx context.Context, rdb *redis.Client, key string, logger *zap.Logger) (cachedResponse, bool) {
	var hit cachedResponse
	bs, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("cache: lookup failed", zap.String("key", key), zap.Error(err))
		}
		return hit, false
	}
	if err := json.Unmarshal(bs, &hit); err != nil || hit.Status == 0 {
		return hit, false
	}
	return hit, true
}
