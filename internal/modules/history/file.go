package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/models"
)

// FileStore keeps the whole history as one indented JSON array. Every write
// rewrites the file. A missing or unparsable file reads as an empty history.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) ([]models.Insight, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("history file unreadable, serving empty history", zap.String("path", s.path), zap.Error(err))
		}
		return []models.Insight{}, nil
	}

	var items []models.Insight
	if err := json.Unmarshal(content, &items); err != nil {
		s.logger.Warn("history file corrupt, serving empty history", zap.String("path", s.path), zap.Error(err))
		return []models.Insight{}, nil
	}
	if items == nil {
		items = []models.Insight{}
	}
	return items, nil
}

// Save replaces the stored history with items.
func (s *FileStore) Save(ctx context.Context, items []models.Insight) error {
	if items == nil {
		items = []models.Insight{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create history temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

func (s *FileStore) Insert(ctx context.Context, item models.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	next := make([]models.Insight, 0, len(items)+1)
	next = append(next, item)
	next = append(next, items...)
	return s.Save(ctx, next)
}

func (s *FileStore) FindByID(ctx context.Context, id string) (*models.Insight, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return findByID(items, id)
}

// Ping checks that the history directory exists.
func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
