// Package cache holds the Redis-backed persistence of per-user library
// selections. Only the selection ids are stored; the prompt is re-resolved
// against the live collection on restore.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promptvault/promptvault-backend/internal/library"
	"github.com/promptvault/promptvault-backend/internal/logger"
)

const selectionTTL = 30 * 24 * time.Hour

type redisSelectionCache struct {
	log *logger.Logger
	rdb *redis.Client
}

// NewRedisSelectionCache connects to REDIS_ADDR and verifies the connection
// with a ping before returning.
func NewRedisSelectionCache(log *logger.Logger) (library.SelectionCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisSelectionCache{
		log: log.With("component", "SelectionCache"),
		rdb: rdb,
	}, nil
}

func selectionKey(ownerID string) string {
	return "selection:" + ownerID
}

func (c *redisSelectionCache) Save(ctx context.Context, ownerID string, sel library.Selection) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := c.rdb.Set(ctx, selectionKey(ownerID), payload, selectionTTL).Err(); err != nil {
		c.log.Error("Saving selection failed", "owner_id", ownerID, "error", err)
		return err
	}
	return nil
}

// Load returns nil when no entry exists for the owner.
func (c *redisSelectionCache) Load(ctx context.Context, ownerID string) (*library.Selection, error) {
	raw, err := c.rdb.Get(ctx, selectionKey(ownerID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.log.Error("Loading selection failed", "owner_id", ownerID, "error", err)
		return nil, err
	}
	var sel library.Selection
	if err := json.Unmarshal(raw, &sel); err != nil {
		return nil, fmt.Errorf("unmarshal selection: %w", err)
	}
	return &sel, nil
}

func (c *redisSelectionCache) Clear(ctx context.Context, ownerID string) error {
	if err := c.rdb.Del(ctx, selectionKey(ownerID)).Err(); err != nil {
		c.log.Error("Clearing selection failed", "owner_id", ownerID, "error", err)
		return err
	}
	return nil
}
