package insight

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/models"
	"github.com/mx-space/docinsight/internal/modules/history"
	"github.com/mx-space/docinsight/internal/modules/processing/extract"
	"github.com/mx-space/docinsight/internal/modules/processing/summarize"
	"github.com/mx-space/docinsight/internal/pkg/pdftest"
)

type fakeSummarizer struct {
	result summarize.Result
	calls  int
	input  string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) summarize.Result {
	f.calls++
	f.input = text
	return f.result
}

type fakeArchiver struct {
	ids []string
	err error
}

func (f *fakeArchiver) Archive(ctx context.Context, id string, data []byte) error {
	f.ids = append(f.ids, id)
	return f.err
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 123456000, time.UTC)

func newTestService(t *testing.T, sum summarize.Summarizer, opts ...Option) (*Service, *history.FileStore) {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.json"), zap.NewNop())
	ids := 0
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			ids++
			return "id-" + string(rune('0'+ids))
		}),
	}
	return NewService(store, sum, zap.NewNop(), append(base, opts...)...), store
}

func TestIngestFallbackSummary(t *testing.T) {
	t.Parallel()

	sum := &fakeSummarizer{result: summarize.Unavailable(summarize.ReasonNotConfigured, nil)}
	svc, store := newTestService(t, sum)

	item, err := svc.Ingest(context.Background(), "cv.pdf", pdftest.Build("cat cat cat dog dog bird"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if item.SummaryType != models.SummaryTypeFallback {
		t.Fatalf("summary_type=%q", item.SummaryType)
	}
	want := "Top 5 frequent words (fallback): cat (3), dog (2), bird (1)"
	if item.Summary != want {
		t.Fatalf("summary=%q, want %q", item.Summary, want)
	}
	if len(item.TopWords) != 3 || item.TopWords[0] != (models.WordCount{Word: "cat", Count: 3}) {
		t.Fatalf("top_words=%#v", item.TopWords)
	}
	if item.ID != "id-1" || item.Filename != "cv.pdf" {
		t.Fatalf("unexpected identity %#v", item)
	}
	if item.UploadedAt != "2024-05-01T10:00:00.123456Z" {
		t.Fatalf("uploaded_at=%q", item.UploadedAt)
	}
	if item.TextExcerpt != "cat cat cat dog dog bird" {
		t.Fatalf("text_excerpt=%q", item.TextExcerpt)
	}
	if sum.calls != 1 || sum.input != "cat cat cat dog dog bird" {
		t.Fatalf("summarizer calls=%d input=%q", sum.calls, sum.input)
	}

	items, _ := store.Load(context.Background())
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("stored=%#v", items)
	}
}

func TestIngestAISummary(t *testing.T) {
	t.Parallel()

	sum := &fakeSummarizer{result: summarize.Summary("A candidate with cat skills.")}
	svc, _ := newTestService(t, sum)

	item, err := svc.Ingest(context.Background(), "cv.pdf", pdftest.Build("cat cat dog"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if item.SummaryType != models.SummaryTypeAI || item.Summary != "A candidate with cat skills." {
		t.Fatalf("unexpected summary %q/%q", item.SummaryType, item.Summary)
	}
	if len(item.TopWords) != 2 {
		t.Fatalf("top words are always computed, got %#v", item.TopWords)
	}
}

func TestIngestNilSummarizerFallsBack(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)
	item, err := svc.Ingest(context.Background(), "a.pdf", pdftest.Build("hello hello world"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if item.SummaryType != models.SummaryTypeFallback {
		t.Fatalf("summary_type=%q", item.SummaryType)
	}
}

func TestIngestRejectsWithoutPersisting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data []byte
		want error
	}{
		{name: "no text", data: pdftest.Build("", ""), want: ErrNoReadableText},
		{name: "not a pdf", data: []byte("plain text"), want: extract.ErrDocumentUnreadable},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sum := &fakeSummarizer{result: summarize.Summary("unused")}
			svc, store := newTestService(t, sum)

			_, err := svc.Ingest(context.Background(), "x.pdf", tc.data)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if sum.calls != 0 {
				t.Fatalf("summarizer should not be called")
			}
			items, _ := store.Load(context.Background())
			if len(items) != 0 {
				t.Fatalf("nothing should be stored, got %d", len(items))
			}
		})
	}
}

func TestIngestThenGetReturnsSameRecord(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &fakeSummarizer{result: summarize.Unavailable(summarize.ReasonTimeout, nil)})
	ctx := context.Background()

	first, err := svc.Ingest(ctx, "one.pdf", pdftest.Build("alpha beta gamma"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	second, err := svc.Ingest(ctx, "two.pdf", pdftest.Build("delta epsilon"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != first.ID || got.Summary != first.Summary || got.UploadedAt != first.UploadedAt || got.TextExcerpt != first.TextExcerpt {
		t.Fatalf("record changed: %#v vs %#v", got, first)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("unexpected order %#v", items)
	}

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, history.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestIngestArchivesAfterStoring(t *testing.T) {
	t.Parallel()

	archiver := &fakeArchiver{err: errors.New("bucket unreachable")}
	svc, store := newTestService(t, nil, WithArchiver(archiver))

	item, err := svc.Ingest(context.Background(), "a.pdf", pdftest.Build("archive archive me"))
	if err != nil {
		t.Fatalf("archive failure must not fail ingestion: %v", err)
	}
	if len(archiver.ids) != 1 || archiver.ids[0] != item.ID {
		t.Fatalf("archived ids=%v", archiver.ids)
	}
	if _, err := store.FindByID(context.Background(), item.ID); err != nil {
		t.Fatalf("record should be stored: %v", err)
	}
}
