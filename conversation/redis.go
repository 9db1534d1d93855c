package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quorumhq/concierge/types"
)

const keyPrefix = "concierge:conversation:"

// RedisStore persists conversations as JSON blobs in Redis, one key per
// conversation. Turn serialization still uses an in-process keyed mutex:
// the deployment model is one orchestrator process per conversation shard,
// so no distributed lock is needed.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	locks  *locks
	logger *zap.Logger
}

// RedisConfig configures the Redis conversation backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
	PoolSize int           `yaml:"pool_size" json:"pool_size"`
}

// DefaultRedisConfig returns the default Redis backend configuration.
// TTL zero means conversations never expire.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     "localhost:6379",
		DB:       0,
		TTL:      0,
		PoolSize: 10,
	}
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis conversation store initialized", zap.String("addr", cfg.Addr))

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
		locks:  newLocks(),
		logger: logger.With(zap.String("component", "conversation_store")),
	}, nil
}

// NewRedisStoreFromClient wraps an existing client; used by tests.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		locks:  newLocks(),
		logger: logger.With(zap.String("component", "conversation_store")),
	}
}

func (s *RedisStore) Lock(id string) func() {
	return s.locks.acquire(id)
}

func (s *RedisStore) GetOrCreate(ctx context.Context, id, entryAgent string) (*Conversation, error) {
	conv, ok, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		return conv, nil
	}

	now := time.Now()
	conv = &Conversation{
		ID:          id,
		ActiveAgent: entryAgent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.put(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Conversation, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, types.NewError(types.ErrStoreUnavailable, "conversation fetch failed").WithCause(err)
	}

	var conv Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, false, types.NewError(types.ErrStoreUnavailable, "conversation decode failed").WithCause(err)
	}
	return &conv, true, nil
}

func (s *RedisStore) Commit(ctx context.Context, id string, delta types.TurnDelta) error {
	conv, ok, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		conv = &Conversation{ID: id, CreatedAt: time.Now()}
	}

	applyDelta(conv, delta)
	return s.put(ctx, conv)
}

func (s *RedisStore) put(ctx context.Context, conv *Conversation) error {
	raw, err := json.Marshal(conv)
	if err != nil {
		return types.NewError(types.ErrStoreUnavailable, "conversation encode failed").WithCause(err)
	}
	if err := s.client.Set(ctx, keyPrefix+conv.ID, raw, s.ttl).Err(); err != nil {
		return types.NewError(types.ErrStoreUnavailable, "conversation write failed").WithCause(err)
	}
	return nil
}

// Ping verifies Redis connectivity; used by readiness checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
