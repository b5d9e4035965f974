package tokenstore

import (
	"context"
	"time"

	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// NewRedisClient parses REDIS_URL and pings the server once.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "parse REDIS_URL")
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "ping redis")
	}
	return client, nil
}

// RedisDenylist stores one key per revoked token, expiring together with the token.
type RedisDenylist struct {
	client redis.Cmdable
	prefix string
	clock  clock.Clock
}

func NewRedisDenylist(client redis.Cmdable, prefix string, clk clock.Clock) *RedisDenylist {
	return &RedisDenylist{client: client, prefix: prefix, clock: clk}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(d.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.prefix+jti, "1", ttl).Err(); err != nil {
		return errs.Wrap(err, "revoke token")
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.prefix+jti).Result()
	if err != nil {
		return false, errs.Wrap(err, "lookup revoked token")
	}
	return n > 0, nil
}
