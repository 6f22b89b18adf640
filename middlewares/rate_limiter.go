// middlewares/rate_limiter.go
package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type LimiterConfig struct {
	RPS     float64       // steady refill rate
	Burst   int           // bucket size
	IdleTTL time.Duration // buckets unused this long are dropped
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key, in memory. A janitor
// goroutine drops idle buckets until Stop is called.
type RateLimiter struct {
	conf    LimiterConfig
	mu      sync.Mutex
	buckets map[string]*clientBucket
	done    chan struct{}
	once    sync.Once
}

func NewRateLimiter(conf LimiterConfig) *RateLimiter {
	if conf.Burst <= 0 {
		conf.Burst = 1
	}
	if conf.IdleTTL <= 0 {
		conf.IdleTTL = 3 * time.Minute
	}
	rl := &RateLimiter{
		conf:    conf,
		buckets: make(map[string]*clientBucket),
		done:    make(chan struct{}),
	}
	go rl.janitor(conf.IdleTTL / 2)
	return rl
}

func (rl *RateLimiter) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			rl.evictIdle(now)
		case <-rl.done:
			return
		}
	}
}

// Stop ends the janitor. Safe to call more than once.
func (rl *RateLimiter) Stop() { rl.once.Do(func() { close(rl.done) }) }

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for k, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.conf.IdleTTL {
			delete(rl.buckets, k)
		}
	}
}

func (rl *RateLimiter) bucket(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}
	lim := rate.NewLimiter(rate.Limit(rl.conf.RPS), rl.conf.Burst)
	rl.buckets[key] = &clientBucket{limiter: lim, lastSeen: now}
	return lim
}

// Allow takes a token for key. When none is left it returns how long the
// client should wait.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := time.Now()
	r := rl.bucket(key, now).ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if d := r.DelayFrom(now); d > 0 {
		r.CancelAt(now)
		return false, d
	}
	return true, 0
}

// KeySelector picks the bucket for a request; "" lets the request through
// without taking a token.
type KeySelector func(c *gin.Context) string

func (rl *RateLimiter) Middleware(selectKey KeySelector) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := selectKey(c)
		if key == "" {
			c.Next()
			return
		}
		if ok, wait := rl.Allow(key); !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			AbortGraphQL(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}
