package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiterStore returns a Redis-backed store when rdb is non-nil, otherwise
// an in-process store. routeID namespaces the keys.
func NewLimiterStore(rdb *redis.Client, routeID string) (limiter.Store, error) {
	if rdb == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix: "rate_limiter:" + routeID,
		}), nil
	}
	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{
		Prefix:   "rate_limiter:" + routeID,
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis limiter store for %s: %w", routeID, err)
	}
	return store, nil
}

// RateLimit limits requests per client IP. rate uses the limiter format,
// e.g. "20-M" for twenty requests per minute.
func RateLimit(store limiter.Store, rate string) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rate, err)
	}
	return ginlimiter.NewMiddleware(
		limiter.New(store, parsed),
		ginlimiter.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
		}),
	), nil
}
