package usernames

import (
	"context"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	redisclient "github.com/KirkDiggler/cobblemon-transporter/internal/redis"
)

// DefaultRedisKey is the hash holding every cached name
const DefaultRedisKey = "usernames"

// RedisConfig holds the configuration for the redis store
type RedisConfig struct {
	Client redisclient.Client
	Key    string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Key == "" {
		c.Key = DefaultRedisKey
	}
	return nil
}

// RedisStore keeps the table in one redis hash, which lets several
// machines share lookups
type RedisStore struct {
	client redisclient.Client
	key    string
}

// NewRedisStore creates a redis backed store
func NewRedisStore(cfg *RedisConfig) (*RedisStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &RedisStore{
		client: cfg.Client,
		key:    cfg.Key,
	}, nil
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)

// Load reads the whole hash
func (s *RedisStore) Load(ctx context.Context) (map[string]string, error) {
	entries, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load usernames from redis")
	}
	return entries, nil
}

// Save writes every entry into the hash
func (s *RedisStore) Save(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	values := make(map[string]interface{}, len(entries))
	for id, name := range entries {
		values[id] = name
	}
	if err := s.client.HSet(ctx, s.key, values).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save usernames to redis")
	}
	return nil
}
