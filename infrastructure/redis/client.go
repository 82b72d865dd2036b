package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/pkg/config"
	"github.com/pinkcat015/todolist/pkg/logger"
)

// releaseScript deletes the lock only while it still holds our token, so an expired
// lock re-acquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client wraps the Redis client. It serves as the JSON cache and the tick lock.
type Client struct {
	rdb *redis.Client

	mu     sync.Mutex
	tokens map[string]string // lock key -> token we hold
}

var (
	_ ports.CachePort = (*Client)(nil)
	_ ports.LockPort  = (*Client)(nil)
)

// NewClient creates a new Redis client from config
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis connected", "addr", opt.Addr, "db", opt.DB)

	return newClient(rdb), nil
}

func newClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb, tokens: make(map[string]string)}
}

// Del deletes one or more keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// ═══════════════════════════════════════════════════════════════════════════════
// Distributed Locking
// ═══════════════════════════════════════════════════════════════════════════════

// AcquireLock sets key with a fresh token if it does not exist.
// Returns false when another holder has it.
func (c *Client) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	token := uuid.NewString()
	ok, err := c.rdb.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil || !ok {
		return false, err
	}

	c.mu.Lock()
	c.tokens[lockKey] = token
	c.mu.Unlock()
	return true, nil
}

// ReleaseLock releases a lock acquired by this client. Unknown keys are a no-op.
func (c *Client) ReleaseLock(ctx context.Context, lockKey string) error {
	c.mu.Lock()
	token, ok := c.tokens[lockKey]
	delete(c.tokens, lockKey)
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return releaseScript.Run(ctx, c.rdb, []string{lockKey}, token).Err()
}

// ═══════════════════════════════════════════════════════════════════════════════
// JSON Cache Helpers
// ═══════════════════════════════════════════════════════════════════════════════

// SetJSON stores a value as JSON with expiration
func (c *Client) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, expiration).Err()
}

// GetJSON unmarshals the cached value into target. Returns ports.ErrCacheMiss when absent.
func (c *Client) GetJSON(ctx context.Context, key string, target any) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, target)
}
