package storage

import (
    "context"
    "fmt"
    "time"

    "github.com/go-redis/redis/v8"
)

// RedisKV persists cart state in Redis. Values carry a TTL so
// abandoned visitor carts eventually expire on their own.
type RedisKV struct {
    client *redis.Client
    ttl    time.Duration
}

func NewRedisKV(redisURL string, ttl time.Duration) (*RedisKV, error) {
    opt, err := redis.ParseURL(redisURL)
    if err != nil {
        return nil, fmt.Errorf("invalid Redis URL: %v", err)
    }

    client := redis.NewClient(opt)

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := client.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("failed to connect to Redis: %v", err)
    }

    return &RedisKV{client: client, ttl: ttl}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
    val, err := r.client.Get(ctx, key).Result()
    if err == redis.Nil {
        return "", ErrNotFound
    }
    if err != nil {
        return "", fmt.Errorf("failed to read key %s: %v", key, err)
    }
    return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
    if err := r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
        return fmt.Errorf("failed to write key %s: %v", key, err)
    }
    return nil
}

func (r *RedisKV) Remove(ctx context.Context, key string) error {
    if err := r.client.Del(ctx, key).Err(); err != nil {
        return fmt.Errorf("failed to delete key %s: %v", key, err)
    }
    return nil
}

func (r *RedisKV) Client() *redis.Client {
    return r.client
}

func (r *RedisKV) Close() error {
    return r.client.Close()
}
