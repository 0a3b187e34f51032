// Package history keeps the newest-first collection of ingested insights.
package history

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/models"
)

var ErrRecordNotFound = errors.New("history: record not found")

// Store is an ordered collection of insights, newest first.
type Store interface {
	Load(ctx context.Context) ([]models.Insight, error)
	Insert(ctx context.Context, item models.Insight) error
	FindByID(ctx context.Context, id string) (*models.Insight, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the backend selected by cfg.History.Backend.
func Open(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.History.Backend {
	case config.HistoryBackendFile:
		return NewFileStore(cfg.HistoryFilePath(), logger), nil
	case config.HistoryBackendRedis:
		return OpenRedisStore(cfg.History.Redis, logger)
	case config.HistoryBackendSQL:
		return OpenSQLStore(cfg)
	case config.HistoryBackendMongo:
		return OpenMongoStore(ctx, cfg.History.Mongo, logger)
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

func findByID(items []models.Insight, id string) (*models.Insight, error) {
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, ErrRecordNotFound
}
