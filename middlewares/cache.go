package middlewares

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventgraph/utils"
)

type cachedBody struct {
	Status int
	Header map[string][]string
	Body   []byte
}

// sha1 of the request keeps Redis keys short
func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// CacheKeyFrom returns the Redis key of a cacheable request, or "" for
// requests that must not be cached. Only GET carries a cacheable document;
// the key covers query, operationName and variables.
func CacheKeyFrom(c *gin.Context) string {
	if c.Request.Method != "GET" || c.FullPath() == "" {
		return ""
	}
	q := c.Request.URL.Query()
	if q.Get("query") == "" {
		return ""
	}
	return utils.QueryCachePrefix + sha1Hex(q.Get("query")+"|"+q.Get("operationName")+"|"+q.Get("variables"))
}

// ResponseCache replays cached 2xx responses of GET queries. A request whose
// execution ran a mutation is never stored.
func ResponseCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := CacheKeyFrom(c)
		if key == "" {
			c.Next()
			return
		}

		if b, err := rdb.Get(context.Background(), key).Bytes(); err == nil && len(b) > 0 {
			var hit cachedBody
			if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&hit); err == nil {
				for k, vals := range hit.Header {
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(hit.Status)
				_, _ = c.Writer.Write(hit.Body)
				c.Abort()
				return
			}
		}

		ctx := utils.WithMutationTracking(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		buf := &bytes.Buffer{}
		bw := &bufferedWriter{ResponseWriter: c.Writer, buf: buf}
		c.Writer = bw
		c.Writer.Header().Set("X-Cache", "MISS")

		c.Next()

		if bw.Status() >= 200 && bw.Status() < 300 && !utils.Mutated(ctx) {
			item := cachedBody{
				Status: bw.Status(),
				Header: map[string][]string{"Content-Type": c.Writer.Header().Values("Content-Type")},
				Body:   buf.Bytes(),
			}
			var o bytes.Buffer
			if err := gob.NewEncoder(&o).Encode(item); err == nil {
				_ = rdb.Set(context.Background(), key, o.Bytes(), ttl).Err()
			}
		}
	}
}

type bufferedWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
