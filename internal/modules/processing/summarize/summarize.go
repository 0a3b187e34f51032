// Package summarize asks a remote model for a document summary. Every failure
// collapses to an Unavailable result so callers can fall back locally.
package summarize

import (
	"context"
	"strings"
	"time"

	"github.com/mx-space/docinsight/internal/config"
)

const (
	// MaxInputRunes caps the text sent to the remote service.
	MaxInputRunes  = 12000
	maxTokens      = 256
	DefaultTimeout = 30 * time.Second
	// DefaultModel is the generic endpoint's model name.
	DefaultModel = config.DefaultSummarizerModel
)

// Reason explains why a summary is unavailable. It is only used for logging.
type Reason string

const (
	ReasonNotConfigured Reason = "not_configured"
	ReasonRequestFailed Reason = "request_failed"
	ReasonTimeout       Reason = "timeout"
	ReasonBadStatus     Reason = "bad_status"
	ReasonBadBody       Reason = "bad_body"
	ReasonEmpty         Reason = "empty"
)

// Result is either a summary or an Unavailable reason.
type Result struct {
	Text   string
	Reason Reason
	Err    error
}

func Summary(text string) Result {
	return Result{Text: text}
}

func Unavailable(reason Reason, err error) Result {
	return Result{Reason: reason, Err: err}
}

// OK reports whether the remote call produced a usable summary.
func (r Result) OK() bool {
	return r.Reason == "" && r.Text != ""
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) Result
}

// New builds the summarizer selected by cfg.Provider.
func New(cfg config.SummarizerConfig) Summarizer {
	switch strings.TrimSpace(cfg.Provider) {
	case config.SummarizerOpenAI, config.SummarizerAnthropic:
		return NewModelClient(cfg)
	default:
		return NewClient(cfg)
	}
}

func truncateRunes(text string, limit int) string {
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

func timeoutOf(cfg config.SummarizerConfig) time.Duration {
	if cfg.TimeoutSecs <= 0 {
		return DefaultTimeout
	}
	return cfg.Timeout()
}
