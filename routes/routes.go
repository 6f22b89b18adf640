// routes/routes.go
package routes

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"eventgraph/middlewares"
	"eventgraph/models"
)

//go:embed playground.html
var playground []byte

// Options tunes the middleware chain. A nil Redis client disables the
// response cache and the mutation quota.
type Options struct {
	Redis       *redis.Client
	CacheTTL    time.Duration
	RPS         float64
	Burst       int
	WriteRPS    float64
	WriteBurst  int
	QuotaPerDay int
	Logger      *zap.Logger
}

type deps struct {
	schema *graphql.Schema
	store  *models.Store
	log    *zap.Logger
}

// RegisterRoutes mounts the GraphQL endpoint, the playground and the health
// check. The returned func stops the limiters' background work.
func RegisterRoutes(server *gin.Engine, schema *graphql.Schema, store *models.Store, opts Options) (stop func()) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	d := &deps{schema: schema, store: store, log: log}
	var limiters []*middlewares.RateLimiter

	server.Use(middlewares.Recovery(log))
	server.Use(middlewares.RequestLogger(log))

	// per-IP rate limit on every route
	if opts.RPS > 0 {
		globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
			RPS:     opts.RPS,
			Burst:   opts.Burst,
			IdleTTL: 3 * time.Minute,
		})
		limiters = append(limiters, globalLimiter)
		server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
			return "ip:" + c.ClientIP()
		}))
	}

	server.GET("/", d.playground)
	server.GET("/healthz", d.health)

	gql := server.Group("/graphql")
	gql.Use(middlewares.ParseGraphQL())

	// mutations get a stricter bucket of their own
	if opts.WriteRPS > 0 {
		writeLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
			RPS:     opts.WriteRPS,
			Burst:   opts.WriteBurst,
			IdleTTL: 10 * time.Minute,
		})
		limiters = append(limiters, writeLimiter)
		gql.Use(writeLimiter.Middleware(func(c *gin.Context) string {
			if !middlewares.MayWrite(c) {
				return ""
			}
			return "write:" + c.ClientIP()
		}))
	}

	if opts.Redis != nil {
		if opts.QuotaPerDay > 0 {
			gql.Use(middlewares.MutationQuota(opts.Redis, middlewares.QuotaRule{
				Limit:  opts.QuotaPerDay,
				Window: 24 * time.Hour,
			}))
		}
		gql.Use(middlewares.ResponseCache(opts.Redis, opts.CacheTTL))
	}
	gql.GET("", d.query)
	gql.POST("", d.query)

	return func() {
		for _, l := range limiters {
			l.Stop()
		}
	}
}

// ===== GraphQL =====

// GET /graphql?query=...  POST /graphql
func (d *deps) query(c *gin.Context) {
	req, ok := middlewares.GraphQLRequestFrom(c)
	if !ok {
		middlewares.AbortGraphQL(c, http.StatusBadRequest, "BAD_REQUEST", "Missing query.")
		return
	}

	resp := d.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		d.log.Debug("graphql errors",
			zap.String("operation", req.OperationName),
			zap.Int("count", len(resp.Errors)),
			zap.String("first", resp.Errors[0].Message))
	}
	c.JSON(http.StatusOK, resp)
}

// ===== misc =====

// GET /
func (d *deps) playground(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", playground)
}

// GET /healthz
func (d *deps) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "counts": d.store.Counts()})
}
