package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"nawabus/internal/utils"
)

// ConnectRedis opens the draft-store client. Returns nil when no address
// is configured; callers fall back to the in-memory store.
func ConnectRedis(env Env) *redis.Client {
	if env.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: env.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		utils.LogError("", "config", "redis_connect", err)
		return nil
	}
	utils.LogEvent("", "config", "redis_connect", "ligação Redis estabelecida")
	return client
}
