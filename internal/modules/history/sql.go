package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/database"
	"github.com/mx-space/docinsight/internal/models"
)

// SQLStore keeps insights in the insights table, ordered by insertion sequence.
type SQLStore struct {
	db *gorm.DB
}

func OpenSQLStore(cfg *config.AppConfig) (*SQLStore, error) {
	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, err
	}
	return NewSQLStore(db), nil
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Load(ctx context.Context) ([]models.Insight, error) {
	var records []models.InsightRecord
	if err := s.db.WithContext(ctx).Order("seq DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load insights: %w", err)
	}
	items := make([]models.Insight, 0, len(records))
	for _, record := range records {
		items = append(items, record.Insight)
	}
	return items, nil
}

func (s *SQLStore) Insert(ctx context.Context, item models.Insight) error {
	record := models.InsightRecord{Insight: item}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("insert insight %s: %w", item.ID, err)
	}
	return nil
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (*models.Insight, error) {
	var record models.InsightRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find insight %s: %w", id, err)
	}
	return &record.Insight, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
