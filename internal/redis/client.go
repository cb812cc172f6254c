package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the startup ping.
const connectTimeout = 5 * time.Second

// Client wraps the shared Redis connection pool used by the page cache.
type Client struct {
	*redis.Client
}

// Connect parses redisURL, opens a pool and pings it so startup fails fast
// when Redis is unreachable.
// URL format: redis://[:password@]host:port[/db]
func Connect(ctx context.Context, redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[Redis] Connected: addr=%s db=%d", opts.Addr, opts.DB)
	return &Client{Client: client}, nil
}
