package utils

import (
	"context"
	"time"

	"github.com/Romain-GUILLEMOT/PlumyrBack/config"
	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// KV est la surface Redis dont les services ont besoin. Les tests la
// remplacent par une fake en mémoire.
type KV interface {
	Set(key, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Del(key string) error
	Exists(key string) (bool, error)
	TTL(key string) (time.Duration, error)
}

type RedisKV struct {
	client *redis.Client
}

func NewRedis(cfg *config.Config) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		return nil, err
	}

	Success("Redis connected successfully.")
	return &RedisKV{client: client}, nil
}

func (r *RedisKV) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(Ctx, key, value, ttl).Err()
}

func (r *RedisKV) Get(key string) (string, error) {
	return r.client.Get(Ctx, key).Result()
}

func (r *RedisKV) Del(key string) error {
	return r.client.Del(Ctx, key).Err()
}

func (r *RedisKV) Exists(key string) (bool, error) {
	n, err := r.client.Exists(Ctx, key).Result()
	return n > 0, err
}

func (r *RedisKV) TTL(key string) (time.Duration, error) {
	ttl, err := r.client.TTL(Ctx, key).Result()
	if err != nil {
		return 0, err
	}
	return ttl, nil
}
