package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/models"
)

func sampleInsight(id string) models.Insight {
	return models.Insight{
		ID:          id,
		Filename:    id + ".pdf",
		UploadedAt:  "2024-05-01T10:00:00.000000Z",
		SummaryType: models.SummaryTypeFallback,
		Summary:     "Top 5 frequent words (fallback): cat (2)",
		TopWords:    models.WordCounts{{Word: "cat", Count: 2}},
		TextExcerpt: "cat cat <b>&</b> é",
	}
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "history.json"), zap.NewNop())
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	items, err := newFileStore(t).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", items)
	}
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := newFileStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	items, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty history, got %d items", len(items))
	}

	// The next insert replaces the corrupt content.
	if err := store.Insert(context.Background(), sampleInsight("a")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	items, _ = store.Load(context.Background())
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("unexpected history %#v", items)
	}
}

func TestFileStoreInsertIsNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newFileStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Insert(ctx, sampleInsight(id)); err != nil {
			t.Fatalf("Insert %s: %v", id, err)
		}
	}

	items, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := make([]string, 0, len(items))
	for _, item := range items {
		got = append(got, item.ID)
	}
	if strings.Join(got, ",") != "c,b,a" {
		t.Fatalf("order=%v", got)
	}
	if items[0].TopWords[0] != (models.WordCount{Word: "cat", Count: 2}) {
		t.Fatalf("top words not round-tripped: %#v", items[0].TopWords)
	}
	if items[0].TextExcerpt != "cat cat <b>&</b> é" {
		t.Fatalf("excerpt=%q", items[0].TextExcerpt)
	}
}

func TestFileStoreWritesReadableJSON(t *testing.T) {
	t.Parallel()

	store := newFileStore(t)
	if err := store.Insert(context.Background(), sampleInsight("a")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	content := string(raw)
	if !strings.HasPrefix(content, "[\n  {\n    \"id\": \"a\"") {
		t.Fatalf("unexpected layout:\n%s", content)
	}
	if !strings.Contains(content, "<b>&</b> é") {
		t.Fatalf("expected unescaped text:\n%s", content)
	}
}

func TestFileStoreFindByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newFileStore(t)
	_ = store.Insert(ctx, sampleInsight("a"))
	_ = store.Insert(ctx, sampleInsight("b"))

	got, err := store.FindByID(ctx, "a")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Filename != "a.pdf" {
		t.Fatalf("filename=%q", got.Filename)
	}

	if _, err := store.FindByID(ctx, "missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestFileStoreConcurrentInserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newFileStore(t)
	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		go func() { errs <- store.Insert(ctx, sampleInsight(id)) }()
	}
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	items, _ := store.Load(ctx)
	if len(items) != n {
		t.Fatalf("expected %d items, got %d", n, len(items))
	}
}

func TestOpenFileBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := &config.AppConfig{
		Paths:   config.RuntimePathsConfig{Data: dir},
		History: config.HistoryConfig{Backend: config.HistoryBackendFile, File: "h.json"},
	}
	store, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	fs, ok := store.(*FileStore)
	if !ok {
		t.Fatalf("expected *FileStore, got %T", store)
	}
	if fs.Path() != filepath.Join(dir, "h.json") {
		t.Fatalf("path=%q", fs.Path())
	}
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
