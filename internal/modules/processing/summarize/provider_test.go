package summarize

import (
	"context"
	"testing"

	"github.com/mx-space/docinsight/internal/config"
)

func TestModelClientRequiresKey(t *testing.T) {
	t.Parallel()

	res := NewModelClient(config.SummarizerConfig{Provider: config.SummarizerOpenAI}).Summarize(context.Background(), "x")
	if res.OK() || res.Reason != ReasonNotConfigured {
		t.Fatalf("result=%+v", res)
	}
}

func TestSummaryFromModelOutput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`{"summary":"Plain JSON."}`:                  "Plain JSON.",
		"```json\n{\"summary\":\"Fenced.\"}\n```":    "Fenced.",
		`Sure: {"summary":"Wrapped."} hope it helps`: "Wrapped.",
		"Just prose, no JSON.":                       "Just prose, no JSON.",
		`{"summary":""}`:                             "",
	}
	for raw, want := range cases {
		if got := summaryFromModelOutput(raw); got != want {
			t.Fatalf("summaryFromModelOutput(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestModelClientModelID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		provider, model, want string
	}{
		{config.SummarizerOpenAI, "", defaultOpenAIModel},
		{config.SummarizerOpenAI, DefaultModel, defaultOpenAIModel},
		{config.SummarizerOpenAI, "gpt-4.1", "gpt-4.1"},
		{config.SummarizerAnthropic, DefaultModel, defaultAnthropicModel},
		{config.SummarizerAnthropic, "claude-sonnet-4-5", "claude-sonnet-4-5"},
	}
	for _, tc := range cases {
		c := NewModelClient(config.SummarizerConfig{Provider: tc.provider, Model: tc.model, APIKey: "k"})
		if got := c.modelID(); got != tc.want {
			t.Fatalf("%s/%q: modelID=%q, want %q", tc.provider, tc.model, got, tc.want)
		}
	}
}
