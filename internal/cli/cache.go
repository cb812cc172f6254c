package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/redis"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the page cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is not set: the in-memory page cache lives in the server process, restart it to clear")
		}

		pages, closePages, err := openPageCache(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closePages()

		if err := pages.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "page cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

// openPageCache returns the Redis cache when REDIS_URL is set, otherwise an
// in-process one. The returned func releases the connection.
func openPageCache(ctx context.Context, cfg *config.Config) (cache.PageCache, func(), error) {
	if cfg.RedisURL == "" {
		log.Println("[PageCache] REDIS_URL not set, using in-memory page cache")
		return cache.NewMemoryPageCache(), func() {}, nil
	}

	client, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Printf("[ERROR] close redis: %v", err)
		}
	}
	return cache.NewRedisPageCache(client.Client), closeFn, nil
}
