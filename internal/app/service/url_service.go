// Package service содержит бизнес-логику сокращения и разрешения URL.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Store — хранилище пар ключ → URL.
// Get обязан возвращать ErrURLNotFound для отсутствующего ключа,
// сетевые бэкенды оборачивают сбои соединения в ErrStoreUnavailable.
type Store interface {
	StoreURLGetter
	StoreURLSetter
}

type StoreURLGetter interface {
	Get(ctx context.Context, key string) (string, error)
}

type StoreURLSetter interface {
	// Set безусловно перезаписывает значение по ключу.
	Set(ctx context.Context, key, url string) error
	// SetIfAbsent атомарно сохраняет url, только если ключ свободен.
	SetIfAbsent(ctx context.Context, key, url string) (bool, error)
}

// KeyGen выдаёт кандидатов в короткие ключи.
type KeyGen interface {
	NewKey() string
}

// CollisionPolicy определяет поведение Shorten при совпадении ключей.
type CollisionPolicy string

const (
	// CollisionRetry перегенерирует ключ, пока SetIfAbsent не сохранит его.
	CollisionRetry CollisionPolicy = "retry"
	// CollisionOverwrite пишет ключ один раз через Set, последняя запись побеждает.
	CollisionOverwrite CollisionPolicy = "overwrite"
)

const DefaultKeyAttempts = 5

const helloMessage = "Hello World!"

type URLShortener interface {
	Shorten(ctx context.Context, url string) (string, error)
}

type URLGetter interface {
	Retrieve(ctx context.Context, key string) (string, error)
}

// URLService реализует сокращение и разрешение URL поверх Store.
type URLService struct {
	store    Store
	keys     KeyGen
	policy   CollisionPolicy
	attempts int
	reserved map[string]struct{}
	logger   *zap.SugaredLogger
}

// Option настраивает URLService.
type Option func(*URLService)

// WithCollisionPolicy задаёт политику коллизий.
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(s *URLService) { s.policy = policy }
}

// WithKeyAttempts ограничивает число попыток генерации ключа для CollisionRetry.
func WithKeyAttempts(n int) Option {
	return func(s *URLService) { s.attempts = n }
}

// WithReservedKeys запрещает выдавать ключи, совпадающие со служебными маршрутами.
// Такой кандидат считается коллизией.
func WithReservedKeys(keys ...string) Option {
	return func(s *URLService) {
		for _, key := range keys {
			s.reserved[key] = struct{}{}
		}
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *URLService) { s.logger = logger }
}

func NewURLService(store Store, keys KeyGen, opts ...Option) (*URLService, error) {
	s := &URLService{
		store:    store,
		keys:     keys,
		policy:   CollisionRetry,
		attempts: DefaultKeyAttempts,
		reserved: make(map[string]struct{}),
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}

	switch s.policy {
	case CollisionRetry, CollisionOverwrite:
	default:
		return nil, fmt.Errorf("%w: unknown collision policy %q", ErrInvalidConfig, s.policy)
	}
	if s.attempts < 1 {
		return nil, fmt.Errorf("%w: key attempts must be positive, got %d", ErrInvalidConfig, s.attempts)
	}
	return s, nil
}

// Hello возвращает приветствие для проверки живости.
func (s *URLService) Hello() string {
	return helloMessage
}

// Shorten генерирует ключ для url, сохраняет пару и возвращает ключ.
// Сам url не валидируется.
func (s *URLService) Shorten(ctx context.Context, url string) (string, error) {
	for attempt := 1; attempt <= s.attempts; attempt++ {
		key := s.keys.NewKey()
		if _, reserved := s.reserved[key]; reserved {
			s.logger.Debugw("Reserved key generated, regenerating", "key", key, "attempt", attempt)
			continue
		}

		if s.policy == CollisionOverwrite {
			if err := s.store.Set(ctx, key, url); err != nil {
				return "", fmt.Errorf("store url: %w", err)
			}
			return key, nil
		}

		stored, err := s.store.SetIfAbsent(ctx, key, url)
		if err != nil {
			return "", fmt.Errorf("store url: %w", err)
		}
		if stored {
			return key, nil
		}
		s.logger.Debugw("Key collision, regenerating", "key", key, "attempt", attempt)
	}

	s.logger.Warnw("Key generation exhausted", "attempts", s.attempts)
	return "", ErrKeyGenerationExhausted
}

// Retrieve возвращает исходный URL по ключу или ErrURLNotFound.
func (s *URLService) Retrieve(ctx context.Context, key string) (string, error) {
	url, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrURLNotFound) {
			return "", err
		}
		return "", fmt.Errorf("get url: %w", err)
	}
	return url, nil
}
