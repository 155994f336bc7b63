package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedTTL is how long a rendered global feed page may be served without
// hitting storage. Mutations do not invalidate these entries; stale content
// within the window is accepted behavior.
const FeedTTL = 15 * time.Minute

const feedPageKeyPrefix = "feed:global:%d:%s"

// FeedPageKey builds the cache key for one rendered global feed page. The
// raw query string is part of the identity so differently-shaped requests
// never share an entry.
func FeedPageKey(page int, rawQuery string) string {
	return fmt.Sprintf(feedPageKeyPrefix, page, rawQuery)
}

// FeedCache stores fully rendered feed pages for their TTL. It is a
// capability, not a library binding: handlers only ever see this interface.
type FeedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
	Clear(ctx context.Context, key string)
}

// redisFeedCache is the Redis-backed FeedCache. All operations are best
// effort; a failed Get is a miss and failed writes are dropped.
type redisFeedCache struct {
	client *redis.Client
}

// NewFeedCache returns a FeedCache backed by the given Redis client, or a
// no-op cache when the client is nil.
func NewFeedCache(client *redis.Client) FeedCache {
	if client == nil {
		return noopFeedCache{}
	}
	return &redisFeedCache{client: client}
}

func (c *redisFeedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Hook already counted the error; treat as a miss.
			return nil, false
		}
		return nil, false
	}
	return body, true
}

func (c *redisFeedCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	_ = c.client.Set(ctx, key, body, ttl).Err()
}

func (c *redisFeedCache) Clear(ctx context.Context, key string) {
	_ = c.client.Del(ctx, key).Err()
}

// noopFeedCache serves every request from storage when Redis is unavailable.
type noopFeedCache struct{}

func (noopFeedCache) Get(context.Context, string) ([]byte, bool)          { return nil, false }
func (noopFeedCache) Set(context.Context, string, []byte, time.Duration) {}
func (noopFeedCache) Clear(context.Context, string)                      {}
