package models

import "time"

// SummaryType records which code path produced an insight's summary.
type SummaryType string

const (
	SummaryTypeAI       SummaryType = "ai"
	SummaryTypeFallback SummaryType = "fallback"
)

// TimestampLayout is the ISO-8601 UTC layout used for uploaded_at.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// ExcerptLength is the maximum number of characters kept in TextExcerpt.
const ExcerptLength = 1000

// Insight is the persisted record describing one ingested document.
// It is created once and never mutated.
type Insight struct {
	ID          string      `json:"id"           bson:"_id"          gorm:"type:varchar(36);uniqueIndex;not null"`
	Filename    string      `json:"filename"     bson:"filename"     gorm:"type:text"`
	UploadedAt  string      `json:"uploaded_at"  bson:"uploaded_at"  gorm:"type:varchar(40)"`
	SummaryType SummaryType `json:"summary_type" bson:"summary_type" gorm:"type:varchar(16)"`
	Summary     string      `json:"summary"      bson:"summary"      gorm:"type:text"`
	TopWords    WordCounts  `json:"top_words"    bson:"top_words"    gorm:"type:text"`
	TextExcerpt string      `json:"text_excerpt" bson:"text_excerpt" gorm:"type:text"`
}

// InsightRecord is the SQL row for an insight. Seq keeps insertion order.
type InsightRecord struct {
	Seq     uint64 `gorm:"primaryKey;autoIncrement"`
	Insight `gorm:"embedded"`
}

func (InsightRecord) TableName() string { return "insights" }

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Excerpt returns the first ExcerptLength characters of text.
func Excerpt(text string) string {
	n := 0
	for i := range text {
		if n == ExcerptLength {
			return text[:i]
		}
		n++
	}
	return text
}
