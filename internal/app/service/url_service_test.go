package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	getFn         func(ctx context.Context, key string) (string, error)
	setFn         func(ctx context.Context, key, url string) error
	setIfAbsentFn func(ctx context.Context, key, url string) (bool, error)
}

func (s *stubStore) Get(ctx context.Context, key string) (string, error) {
	if s.getFn == nil {
		return "", ErrURLNotFound
	}
	return s.getFn(ctx, key)
}

func (s *stubStore) Set(ctx context.Context, key, url string) error {
	if s.setFn == nil {
		return nil
	}
	return s.setFn(ctx, key, url)
}

func (s *stubStore) SetIfAbsent(ctx context.Context, key, url string) (bool, error) {
	if s.setIfAbsentFn == nil {
		return true, nil
	}
	return s.setIfAbsentFn(ctx, key, url)
}

// sequenceKeys выдаёт ключи key1, key2, ...
type sequenceKeys struct {
	n int
}

func (g *sequenceKeys) NewKey() string {
	g.n++
	return fmt.Sprintf("key%d", g.n)
}

func newTestService(t *testing.T, store Store, opts ...Option) *URLService {
	t.Helper()
	svc, err := NewURLService(store, &sequenceKeys{}, opts...)
	require.NoError(t, err)
	return svc
}

func TestShorten_Success(t *testing.T) {
	var gotKey, gotURL string
	store := &stubStore{
		setIfAbsentFn: func(_ context.Context, key, url string) (bool, error) {
			gotKey, gotURL = key, url
			return true, nil
		},
	}
	svc := newTestService(t, store)

	key, err := svc.Shorten(context.Background(), "docker.com")
	require.NoError(t, err)
	assert.Equal(t, "key1", key)
	assert.Equal(t, "key1", gotKey)
	assert.Equal(t, "docker.com", gotURL)
}

func TestShorten_RetriesOnCollision(t *testing.T) {
	taken := map[string]bool{"key1": true, "key2": true}
	store := &stubStore{
		setIfAbsentFn: func(_ context.Context, key, _ string) (bool, error) {
			return !taken[key], nil
		},
	}
	svc := newTestService(t, store)

	key, err := svc.Shorten(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "key3", key)
}

func TestShorten_Exhausted(t *testing.T) {
	calls := 0
	store := &stubStore{
		setIfAbsentFn: func(context.Context, string, string) (bool, error) {
			calls++
			return false, nil
		},
	}
	svc := newTestService(t, store, WithKeyAttempts(3))

	_, err := svc.Shorten(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrKeyGenerationExhausted)
	assert.Equal(t, 3, calls)
}

func TestShorten_OverwritePolicy(t *testing.T) {
	setCalls := 0
	store := &stubStore{
		setFn: func(context.Context, string, string) error {
			setCalls++
			return nil
		},
		setIfAbsentFn: func(context.Context, string, string) (bool, error) {
			t.Fatal("SetIfAbsent must not be called with overwrite policy")
			return false, nil
		},
	}
	svc := newTestService(t, store, WithCollisionPolicy(CollisionOverwrite))

	key, err := svc.Shorten(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "key1", key)
	assert.Equal(t, 1, setCalls)
}

func TestShorten_SkipsReservedKeys(t *testing.T) {
	tests := []struct {
		name   string
		policy CollisionPolicy
	}{
		{name: "retry", policy: CollisionRetry},
		{name: "overwrite", policy: CollisionOverwrite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var written []string
			store := &stubStore{
				setFn: func(_ context.Context, key, _ string) error {
					written = append(written, key)
					return nil
				},
				setIfAbsentFn: func(_ context.Context, key, _ string) (bool, error) {
					written = append(written, key)
					return true, nil
				},
			}
			svc := newTestService(t, store,
				WithCollisionPolicy(tt.policy),
				WithReservedKeys("key1", "key2"),
			)

			key, err := svc.Shorten(context.Background(), "https://example.com")
			require.NoError(t, err)
			assert.Equal(t, "key3", key)
			assert.Equal(t, []string{"key3"}, written)
		})
	}
}

func TestShorten_OnlyReservedKeysExhausts(t *testing.T) {
	svc := newTestService(t, &stubStore{},
		WithKeyAttempts(2),
		WithReservedKeys("key1", "key2"),
	)

	_, err := svc.Shorten(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, ErrKeyGenerationExhausted)
}

func TestShorten_StoreError(t *testing.T) {
	unavailable := fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
	tests := []struct {
		name  string
		store *stubStore
		opts  []Option
	}{
		{
			name: "retry policy",
			store: &stubStore{setIfAbsentFn: func(context.Context, string, string) (bool, error) {
				return false, unavailable
			}},
		},
		{
			name: "overwrite policy",
			store: &stubStore{setFn: func(context.Context, string, string) error {
				return unavailable
			}},
			opts: []Option{WithCollisionPolicy(CollisionOverwrite)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.store, tt.opts...)
			key, err := svc.Shorten(context.Background(), "https://example.com")
			assert.ErrorIs(t, err, ErrStoreUnavailable)
			assert.Empty(t, key)
		})
	}
}

func TestRetrieve(t *testing.T) {
	store := &stubStore{
		getFn: func(_ context.Context, key string) (string, error) {
			switch key {
			case "abc123":
				return "https://example.com", nil
			case "empty1":
				return "", nil
			case "broken":
				return "", fmt.Errorf("%w: i/o timeout", ErrStoreUnavailable)
			}
			return "", ErrURLNotFound
		},
	}
	svc := newTestService(t, store)

	url, err := svc.Retrieve(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", url)

	url, err = svc.Retrieve(context.Background(), "empty1")
	require.NoError(t, err)
	assert.Equal(t, "", url)

	_, err = svc.Retrieve(context.Background(), "doesnotexist")
	assert.ErrorIs(t, err, ErrURLNotFound)

	_, err = svc.Retrieve(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.False(t, errors.Is(err, ErrURLNotFound))
}

func TestNewURLService_InvalidOptions(t *testing.T) {
	_, err := NewURLService(&stubStore{}, &sequenceKeys{}, WithCollisionPolicy("merge"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewURLService(&stubStore{}, &sequenceKeys{}, WithKeyAttempts(0))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHello(t *testing.T) {
	svc := newTestService(t, &stubStore{})
	assert.Equal(t, "Hello World!", svc.Hello())
}
