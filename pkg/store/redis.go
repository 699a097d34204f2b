package store

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// DefaultRedisPrefix namespaces layout keys.
const DefaultRedisPrefix = "dashgrid:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key. Defaults to DefaultRedisPrefix.
	Prefix string
}

// RedisStore keeps each layout as a JSON string under prefix+"layout:"+id
// and tracks all IDs in the set prefix+"layouts".
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) key(id string) string { return s.prefix + "layout:" + id }

func (s *RedisStore) setKey() string { return s.prefix + "layouts" }

func (s *RedisStore) Get(ctx context.Context, id string) (l *Layout, err error) {
	defer func(start time.Time) { observe(ctx, BackendRedis, "get", start, err) }(time.Now())

	var data []byte
	err = RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.key(id)).Bytes()
		return classify(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "redis get %q", id)
	}
	l = new(Layout)
	if err := json.Unmarshal(data, l); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "decode layout %q", id)
	}
	return l, nil
}

func (s *RedisStore) Put(ctx context.Context, l *Layout) (err error) {
	defer func(start time.Time) { observe(ctx, BackendRedis, "put", start, err) }(time.Now())

	if err := errs.ValidateID(l.ID); err != nil {
		return err
	}
	stamp(l)
	data, err := json.Marshal(l)
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "encode layout %q", l.ID)
	}
	err = RetryWithBackoff(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key(l.ID), data, 0)
			pipe.SAdd(ctx, s.setKey(), l.ID)
			return nil
		})
		return classify(err)
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "redis put %q", l.ID)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe(ctx, BackendRedis, "delete", start, err) }(time.Now())

	err = RetryWithBackoff(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.key(id))
			pipe.SRem(ctx, s.setKey(), id)
			return nil
		})
		return classify(err)
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "redis delete %q", id)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) (ids []string, err error) {
	defer func(start time.Time) { observe(ctx, BackendRedis, "list", start, err) }(time.Now())

	err = RetryWithBackoff(ctx, func() error {
		var err error
		ids, err = s.client.SMembers(ctx, s.setKey()).Result()
		return classify(err)
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "redis list")
	}
	return sortIDs(ids), nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

// classify marks network failures as retryable.
func classify(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Retryable(err)
	}
	return err
}

var _ Store = (*RedisStore)(nil)
