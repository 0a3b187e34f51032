package summarize

import (
	"context"
	"errors"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"

	"github.com/mx-space/docinsight/internal/config"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// ModelClient summarizes through a hosted chat model (OpenAI or Anthropic).
type ModelClient struct {
	provider string
	apiKey   string
	baseURL  string
	model    string
	timeout  time.Duration
}

func NewModelClient(cfg config.SummarizerConfig) *ModelClient {
	return &ModelClient{
		provider: strings.TrimSpace(cfg.Provider),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		baseURL:  strings.TrimSpace(cfg.BaseURL),
		model:    strings.TrimSpace(cfg.Model),
		timeout:  timeoutOf(cfg),
	}
}

func (c *ModelClient) Summarize(ctx context.Context, text string) Result {
	if c.apiKey == "" {
		return Unavailable(ReasonNotConfigured, nil)
	}

	model := c.buildLanguageModel()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := jetai.GenerateText(
		ctx,
		[]jetapi.Message{
			&jetapi.SystemMessage{Content: summarySystemPrompt},
			&jetapi.UserMessage{Content: jetapi.ContentFromText(buildSummaryPrompt(truncateRunes(text, MaxInputRunes)))},
		},
		jetai.WithModel(model),
		jetai.WithMaxOutputTokens(maxTokens),
	)
	if err != nil {
		return Unavailable(classifyTransportError(err), err)
	}

	raw, err := extractTextFromAIResponse(resp)
	if err != nil {
		return Unavailable(ReasonEmpty, err)
	}
	summary := summaryFromModelOutput(raw)
	if summary == "" {
		return Unavailable(ReasonEmpty, nil)
	}
	return Summary(summary)
}

// modelID resolves the configured model name for the hosted provider. The
// generic endpoint's default name maps to the provider default.
func (c *ModelClient) modelID() string {
	if c.model != "" && c.model != DefaultModel {
		return c.model
	}
	if c.provider == config.SummarizerAnthropic {
		return defaultAnthropicModel
	}
	return defaultOpenAIModel
}

func (c *ModelClient) buildLanguageModel() jetapi.LanguageModel {
	modelID := c.modelID()

	if c.provider == config.SummarizerAnthropic {
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(c.apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if c.baseURL != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(c.baseURL, "/")))
		}
		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client))
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(c.apiKey),
		openaioption.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(c.baseURL, "/")))
	}
	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client))
}

func extractTextFromAIResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", errors.New("empty response from AI")
	}
	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", errors.New("empty response from AI")
	}
	return full.String(), nil
}

// summaryFromModelOutput accepts either the requested {"summary": ...} object,
// optionally fenced, or plain prose.
func summaryFromModelOutput(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}"); start >= 0 && end > start {
		if summary, parsed := extractSummary([]byte(cleaned[start : end+1])); parsed {
			return summary
		}
	}
	return cleaned
}
