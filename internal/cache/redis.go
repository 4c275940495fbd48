package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/reservaon/api/internal/config"
)

// ProfileTTL bounds how stale a cached public company profile can get.
const ProfileTTL = 5 * time.Minute

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// IsMiss reports whether an error is a plain cache miss.
func IsMiss(err error) bool {
	return err == redis.Nil
}

// GetCompanyProfile returns the cached public profile JSON for a slug.
func (c *Client) GetCompanyProfile(ctx context.Context, slug string) (string, error) {
	return c.rdb.Get(ctx, profileKey(slug)).Result()
}

// SetCompanyProfile caches the public profile JSON for a slug.
func (c *Client) SetCompanyProfile(ctx context.Context, slug, payload string) error {
	return c.rdb.Set(ctx, profileKey(slug), payload, ProfileTTL).Err()
}

// InvalidateCompanyProfile drops the cached profile after a settings update.
func (c *Client) InvalidateCompanyProfile(ctx context.Context, slug string) error {
	return c.rdb.Del(ctx, profileKey(slug)).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func profileKey(slug string) string {
	return fmt.Sprintf("company:profile:%s", slug)
}
