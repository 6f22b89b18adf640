package utils

import (
	"context"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// QueryCachePrefix namespaces cached GraphQL responses in Redis.
const QueryCachePrefix = "cache:graphql:query:"

// CacheInvalidator drops cached query responses after a mutation.
// A nil invalidator or one without a client only records the mutation.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) PurgeQueries(ctx context.Context) {
	MarkMutated(ctx)
	if ci == nil || ci.rdb == nil {
		return
	}
	iter := ci.rdb.Scan(ctx, 0, QueryCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}

type mutationKey struct{}

// WithMutationTracking returns a context in which MarkMutated is observable.
func WithMutationTracking(ctx context.Context) context.Context {
	return context.WithValue(ctx, mutationKey{}, new(atomic.Bool))
}

func MarkMutated(ctx context.Context) {
	if f, ok := ctx.Value(mutationKey{}).(*atomic.Bool); ok {
		f.Store(true)
	}
}

// Mutated reports whether a mutation ran under ctx. Responses of such
// requests must not be cached.
func Mutated(ctx context.Context) bool {
	f, ok := ctx.Value(mutationKey{}).(*atomic.Bool)
	return ok && f.Load()
}
