// Package insight turns uploaded documents into stored insights and serves
// them back.
package insight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/models"
	"github.com/mx-space/docinsight/internal/modules/history"
	"github.com/mx-space/docinsight/internal/modules/processing/extract"
	"github.com/mx-space/docinsight/internal/modules/processing/keywords"
	"github.com/mx-space/docinsight/internal/modules/processing/summarize"
)

// ErrNoReadableText is returned when a document parses but holds no text.
var ErrNoReadableText = errors.New("no readable text found in document")

// SourceArchiver keeps a copy of an ingested document.
type SourceArchiver interface {
	Archive(ctx context.Context, id string, data []byte) error
}

type Service struct {
	store      history.Store
	summarizer summarize.Summarizer
	archiver   SourceArchiver
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

type Option func(*Service)

func WithArchiver(archiver SourceArchiver) Option {
	return func(s *Service) { s.archiver = archiver }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store history.Store, summarizer summarize.Summarizer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:      store,
		summarizer: summarizer,
		logger:     logger,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest extracts, summarizes and stores one document. Nothing is stored when
// the document is unreadable or has no text.
func (s *Service) Ingest(ctx context.Context, filename string, data []byte) (*models.Insight, error) {
	text, err := extract.PDFBytes(data)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrNoReadableText
	}

	topWords := keywords.Rank(text, keywords.DefaultTopK)

	summaryType := models.SummaryTypeFallback
	summary := ""
	result := s.summarize(ctx, text)
	if result.OK() {
		summaryType = models.SummaryTypeAI
		summary = result.Text
	} else {
		summary = keywords.FallbackSummary(topWords)
		fields := []zap.Field{zap.String("filename", filename), zap.String("reason", string(result.Reason))}
		if result.Err != nil {
			fields = append(fields, zap.Error(result.Err))
		}
		s.logger.Info("remote summary unavailable, using keyword fallback", fields...)
	}

	item := models.Insight{
		ID:          s.newID(),
		Filename:    filename,
		UploadedAt:  models.FormatTimestamp(s.now()),
		SummaryType: summaryType,
		Summary:     summary,
		TopWords:    topWords,
		TextExcerpt: models.Excerpt(text),
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return nil, fmt.Errorf("store insight: %w", err)
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, item.ID, data); err != nil {
			s.logger.Warn("archive source document failed", zap.String("id", item.ID), zap.Error(err))
		}
	}
	return &item, nil
}

func (s *Service) summarize(ctx context.Context, text string) summarize.Result {
	if s.summarizer == nil {
		return summarize.Unavailable(summarize.ReasonNotConfigured, nil)
	}
	return s.summarizer.Summarize(ctx, text)
}

// List returns every stored insight, newest first.
func (s *Service) List(ctx context.Context) ([]models.Insight, error) {
	items, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Insight{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Insight, error) {
	return s.store.FindByID(ctx, id)
}
