package blob

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/redis/go-redis/v9"

	perrors "github.com/matzehuels/perfreport/pkg/errors"
)

// RedisBackend stores blobs as plain string keys under a prefix.
// Network failures are retried with [RetryWithBackoff].
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures a RedisBackend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // defaults to "perfreport:"
}

// NewRedisBackend connects lazily; call [RedisBackend.Ensure] to verify
// the server is reachable.
func NewRedisBackend(opts RedisOptions) *RedisBackend {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisBackendWithClient(client, opts.Prefix)
}

// NewRedisBackendWithClient wraps an existing client.
func NewRedisBackendWithClient(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "perfreport:"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

// Location returns a redis:// URL identifying the namespace.
func (b *RedisBackend) Location() string {
	return "redis://" + b.client.Options().Addr + "/" + b.prefix
}

// Ensure pings the server.
func (b *RedisBackend) Ensure(ctx context.Context) error {
	return b.do(ctx, func() error {
		return b.client.Ping(ctx).Err()
	})
}

// Get reads a blob.
func (b *RedisBackend) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := b.do(ctx, func() error {
		var err error
		data, err = b.client.Get(ctx, b.prefix+name).Bytes()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

// Put writes a blob with no expiry.
func (b *RedisBackend) Put(ctx context.Context, name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return b.do(ctx, func() error {
		return b.client.Set(ctx, b.prefix+name, data, 0).Err()
	})
}

// Delete removes a blob.
func (b *RedisBackend) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return b.do(ctx, func() error {
		return b.client.Del(ctx, b.prefix+name).Err()
	})
}

// Exists reports whether a blob is present.
func (b *RedisBackend) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	var n int64
	err := b.do(ctx, func() error {
		var err error
		n, err = b.client.Exists(ctx, b.prefix+name).Result()
		return err
	})
	return n > 0, err
}

// List scans every key under the prefix.
func (b *RedisBackend) List(ctx context.Context) ([]string, error) {
	var names []string
	err := b.do(ctx, func() error {
		names = names[:0]
		iter := b.client.Scan(ctx, 0, escapeGlob(b.prefix)+"*", 100).Iterator()
		for iter.Next(ctx) {
			names = append(names, strings.TrimPrefix(iter.Val(), b.prefix))
		}
		return iter.Err()
	})
	return names, err
}

// Close closes the underlying client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}

// do runs fn, retrying network errors. Failures other than a missing key
// carry [perrors.ErrCodeStorage].
func (b *RedisBackend) do(ctx context.Context, fn func() error) error {
	err := RetryWithBackoff(ctx, func() error {
		err := fn()
		var netErr net.Error
		if errors.As(err, &netErr) {
			return Retryable(err)
		}
		return err
	})
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	return perrors.Wrap(perrors.ErrCodeStorage, err, "redis %s", b.client.Options().Addr)
}

// escapeGlob escapes the characters SCAN MATCH treats as wildcards.
func escapeGlob(s string) string {
	return strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`).Replace(s)
}

// Ensure RedisBackend implements Backend.
var _ Backend = (*RedisBackend)(nil)
