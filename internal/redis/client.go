package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gymmawy/gymmawy/internal/config"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
	"github.com/gymmawy/gymmawy/internal/logger"
)

// Client wraps the go-redis client.
type Client struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to Redis").
			WithReportableDetails(map[string]any{"address": cfg.Redis.Address}).
			Mark(ierr.ErrSystem)
	}

	log.Infow("connected to redis", "address", cfg.Redis.Address)

	return &Client{rdb: rdb, log: log}, nil
}

// GetClient returns the underlying Redis client.
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rdb.Ping(ctx).Result()
	return err
}
