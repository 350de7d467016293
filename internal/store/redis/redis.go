package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/store"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the redis key holding the route table document.
const DefaultKey = "media-relay:route-table"

// RedisStore implements store.TableStore on a networked redis instance. The
// whole table lives under a single key as one JSON document.
type RedisStore struct {
	client *redis.Client
	key    string
}

type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

func NewRedisStore(opts Options) *RedisStore {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}

	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		key: key,
	}
}

func (s *RedisStore) Name() string {
	return "redis"
}

func (s *RedisStore) ReadTable(ctx context.Context) (*domain.RouteTable, error) {
	body, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to read route table from redis: %w", err)
	}

	var table domain.RouteTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("failed to decode stored route table: %w", err)
	}
	if table.Routes == nil {
		table.Routes = map[string]domain.RouteDefinition{}
	}

	return &table, nil
}

func (s *RedisStore) WriteTable(ctx context.Context, table *domain.RouteTable) error {
	body, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode route table: %w", err)
	}

	// no TTL: the document is replaced on every admin save, never expired
	if err := s.client.Set(ctx, s.key, body, 0).Err(); err != nil {
		return fmt.Errorf("failed to write route table to redis: %w", err)
	}

	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
