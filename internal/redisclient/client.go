package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Keys of the active product-code sets mirrored from the database. They serve
// the dedup guard's fast path only; the database stays the source of truth.
const (
	keyPendingCodes  = "catalog:codes:pending"
	keyApprovedCodes = "catalog:codes:approved"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func codeSetKey(store string) string {
	if store == "approved" || store == "catalog_approved" {
		return keyApprovedCodes
	}
	return keyPendingCodes
}

// CodeInSet checks whether a product code is cached as active in a store.
func (c *Client) CodeInSet(ctx context.Context, store, code string) (bool, error) {
	return c.rdb.SIsMember(ctx, codeSetKey(store), code).Result()
}

// AddCodes marks product codes as active in a store's cached set.
func (c *Client) AddCodes(ctx context.Context, store string, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}
	members := make([]interface{}, len(codes))
	for i, code := range codes {
		members[i] = code
	}
	return c.rdb.SAdd(ctx, codeSetKey(store), members...).Err()
}

// RemoveCodes clears product codes from a store's cached set.
func (c *Client) RemoveCodes(ctx context.Context, store string, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}
	members := make([]interface{}, len(codes))
	for i, code := range codes {
		members[i] = code
	}
	return c.rdb.SRem(ctx, codeSetKey(store), members...).Err()
}

// MoveCodes moves product codes between the cached sets in one pipeline, so a
// transition never leaves a code in both.
func (c *Client) MoveCodes(ctx context.Context, fromStore, toStore string, codes ...string) error {
	if len(codes) == 0 {
		return nil
	}

	pipe := c.rdb.TxPipeline()
	for _, code := range codes {
		pipe.SMove(ctx, codeSetKey(fromStore), codeSetKey(toStore), code)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// ReplaceCodes atomically replaces a store's whole cached set (startup resync).
func (c *Client) ReplaceCodes(ctx context.Context, store string, codes []string) error {
	key := codeSetKey(store)

	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(codes) > 0 {
		members := make([]interface{}, len(codes))
		for i, code := range codes {
			members[i] = code
		}
		pipe.SAdd(ctx, key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}
