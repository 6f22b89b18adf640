package middlewares

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// MutationQuotaPrefix namespaces the per-client mutation counters.
const MutationQuotaPrefix = "quota:mutations:"

type QuotaRule struct {
	Limit  int                       // mutations allowed per window
	Window time.Duration             // fixed windows aligned on the Unix epoch
	Client func(*gin.Context) string // nil counts per client IP
	Now    func() time.Time          // nil uses time.Now
}

// MutationQuota counts requests that may write (see MayWrite) per client and
// window with INCR; queries pass uncounted. If Redis is unreachable the
// request is let through. Must run after ParseGraphQL.
func MutationQuota(rdb *redis.Client, rule QuotaRule) gin.HandlerFunc {
	if rule.Client == nil {
		rule.Client = func(c *gin.Context) string { return c.ClientIP() }
	}
	if rule.Now == nil {
		rule.Now = time.Now
	}
	if rule.Window < time.Second {
		rule.Window = time.Second
	}
	return func(c *gin.Context) {
		if !MayWrite(c) {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		window := rule.Now().Unix() / int64(rule.Window/time.Second)
		key := fmt.Sprintf("%s%s:%d", MutationQuotaPrefix, rule.Client(c), window)

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if n == 1 {
			_ = rdb.Expire(ctx, key, rule.Window).Err()
		}
		c.Header("X-Quota-Limit", strconv.Itoa(rule.Limit))
		if int(n) > rule.Limit {
			c.Header("X-Quota-Remaining", "0")
			AbortGraphQL(c, http.StatusTooManyRequests, "QUOTA_EXCEEDED",
				"Mutation quota exceeded. Please try again later.")
			return
		}
		c.Header("X-Quota-Remaining", strconv.Itoa(rule.Limit-int(n)))
		c.Next()
	}
}
