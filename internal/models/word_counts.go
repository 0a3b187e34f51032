package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// WordCount is one ranked keyword. It is encoded as a two-element JSON array
// ["word", count].
type WordCount struct {
	Word  string `bson:"word"`
	Count int    `bson:"count"`
}

func (w WordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{w.Word, w.Count})
}

func (w *WordCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("models.WordCount: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("models.WordCount: expected [word, count], got %d elements", len(pair))
	}
	var next WordCount
	if err := json.Unmarshal(pair[0], &next.Word); err != nil {
		return fmt.Errorf("models.WordCount: word: %w", err)
	}
	if err := json.Unmarshal(pair[1], &next.Count); err != nil {
		return fmt.Errorf("models.WordCount: count: %w", err)
	}
	*w = next
	return nil
}

// WordCounts stores ranked keywords as JSON in SQL columns.
type WordCounts []WordCount

// MarshalJSON keeps an empty list as [] rather than null.
func (a WordCounts) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]WordCount(a))
}

func (a WordCounts) Value() (driver.Value, error) {
	b, err := a.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *WordCounts) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.WordCounts: Scan on nil pointer")
	}
	if value == nil {
		*a = WordCounts{}
		return nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("models.WordCounts: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*a = WordCounts{}
		return nil
	}

	var arr []WordCount
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("models.WordCounts: %w", err)
	}
	*a = arr
	return nil
}
