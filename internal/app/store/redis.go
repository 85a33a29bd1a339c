package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix отделяет ключи сервиса от прочих данных в Redis.
const KeyPrefix = "url:"

// RedisOptions — параметры подключения к Redis.
type RedisOptions struct {
	Addr       string
	Password   string
	DB         int
	Timeout    time.Duration
	MaxRetries int
}

// RedisStore хранит пары во внешнем Redis. Вытеснение ключей определяется настройками Redis.
type RedisStore struct {
	client  *redis.Client
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewRedisStore создаёт клиента. Соединение устанавливается лениво, при первом запросе.
func NewRedisStore(opts RedisOptions, logger *zap.SugaredLogger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:            opts.Addr,
		Password:        opts.Password,
		DB:              opts.DB,
		DialTimeout:     opts.Timeout,
		ReadTimeout:     opts.Timeout,
		WriteTimeout:    opts.Timeout,
		MaxRetries:      opts.MaxRetries,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 256 * time.Millisecond,
	})
	return &RedisStore{client: client, timeout: opts.Timeout, logger: logger}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	val, err := r.client.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", service.ErrURLNotFound
	}
	if err != nil {
		r.logger.Errorw("Failed to get url from redis", "key", key, "error", err)
		return "", unavailable(err)
	}
	return val, nil
}

func (r *RedisStore) Set(ctx context.Context, key, url string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, KeyPrefix+key, url, 0).Err(); err != nil {
		r.logger.Errorw("Failed to set url in redis", "key", key, "error", err)
		return unavailable(err)
	}
	return nil
}

func (r *RedisStore) SetIfAbsent(ctx context.Context, key, url string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	stored, err := r.client.SetNX(ctx, KeyPrefix+key, url, 0).Result()
	if err != nil {
		r.logger.Errorw("Failed to setnx url in redis", "key", key, "error", err)
		return false, unavailable(err)
	}
	return stored, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", service.ErrStoreUnavailable, err)
}
