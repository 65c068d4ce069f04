package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/domain"
)

// cachedAccount is the Redis representation of an account. The
// credential digest is never cached.
type cachedAccount struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccountCache is a read-through cache for account lookups by id.
// All methods are nil-safe and degrade silently to the store on any
// Redis failure; the cache is never an error source.
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAccountCache builds a cache over the shared Redis client. Returns
// nil when Redis is not configured, which disables caching.
func NewAccountCache(r *Redis, ttl time.Duration, logger *zap.Logger) *AccountCache {
	if r == nil || r.Client == nil || ttl <= 0 {
		return nil
	}
	return &AccountCache{client: r.Client, ttl: ttl, logger: logger}
}

// Get returns the cached account or nil on miss.
func (c *AccountCache) Get(ctx context.Context, id int64) *domain.Account {
	if c == nil {
		return nil
	}
	payload, err := c.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("account cache get failed", zap.Int64("id", id), zap.Error(err))
		}
		return nil
	}

	var cached cachedAccount
	if err := json.Unmarshal(payload, &cached); err != nil {
		c.logger.Debug("account cache entry malformed", zap.Int64("id", id), zap.Error(err))
		return nil
	}
	return &domain.Account{ID: cached.ID, Name: cached.Name, Email: cached.Email}
}

// Set stores the account's public fields under its id.
func (c *AccountCache) Set(ctx context.Context, account *domain.Account) {
	if c == nil || account == nil {
		return
	}
	payload, err := json.Marshal(cachedAccount{ID: account.ID, Name: account.Name, Email: account.Email})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, accountKey(account.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Debug("account cache set failed", zap.Int64("id", account.ID), zap.Error(err))
	}
}

// Invalidate drops the cached entry for an account.
func (c *AccountCache) Invalidate(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, accountKey(id)).Err(); err != nil {
		c.logger.Debug("account cache invalidate failed", zap.Int64("id", id), zap.Error(err))
	}
}

func accountKey(id int64) string {
	return fmt.Sprintf("account:%d", id)
}
