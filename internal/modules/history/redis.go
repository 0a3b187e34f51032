package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/models"
	"github.com/mx-space/docinsight/internal/pkg/redis"
)

// RedisStore keeps insight ids in a list (LPUSH, newest first) and the
// records themselves in a hash keyed by id.
type RedisStore struct {
	client  *redis.Client
	listKey string
	hashKey string
	logger  *zap.Logger
}

func OpenRedisStore(cfg config.RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	client, err := redis.Connect(cfg.URLValue())
	if err != nil {
		return nil, err
	}
	return NewRedisStore(client, cfg.Prefix, logger), nil
}

func NewRedisStore(client *redis.Client, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "insight"
	}
	return &RedisStore{
		client:  client,
		listKey: prefix + ":history",
		hashKey: prefix + ":records",
		logger:  logger,
	}
}

func (s *RedisStore) Load(ctx context.Context) ([]models.Insight, error) {
	rdb := s.client.Raw()
	ids, err := rdb.LRange(ctx, s.listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s: %w", s.listKey, err)
	}
	items := make([]models.Insight, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	values, err := rdb.HMGet(ctx, s.hashKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hmget %s: %w", s.hashKey, err)
	}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var item models.Insight
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			s.logger.Warn("skipping undecodable history record", zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *RedisStore) Insert(ctx context.Context, item models.Insight) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode insight: %w", err)
	}
	_, err = s.client.Raw().TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, s.hashKey, item.ID, payload)
		pipe.LPush(ctx, s.listKey, item.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis insert %s: %w", item.ID, err)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, id string) (*models.Insight, error) {
	raw, err := s.client.Raw().HGet(ctx, s.hashKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget %s: %w", s.hashKey, err)
	}
	var item models.Insight
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		s.logger.Warn("undecodable history record", zap.String("id", id), zap.Error(err))
		return nil, ErrRecordNotFound
	}
	return &item, nil
}

func (s *RedisStore) Ping(ctx context.Context) error { return s.client.Ping(ctx) }

func (s *RedisStore) Close() error { return s.client.Close() }
