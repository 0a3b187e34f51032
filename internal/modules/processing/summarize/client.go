package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mx-space/docinsight/internal/config"
)

const maxResponseBytes = 1 << 20

// Client posts text to a generic summarize endpoint with a bearer key.
type Client struct {
	apiKey   string
	endpoint string
	model    string
	timeout  time.Duration
	http     *http.Client
}

func NewClient(cfg config.SummarizerConfig) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		endpoint: strings.TrimSpace(cfg.BaseURL),
		model:    model,
		timeout:  timeoutOf(cfg),
		http:     &http.Client{},
	}
}

type summarizeRequest struct {
	Model     string `json:"model"`
	Input     string `json:"input"`
	Task      string `json:"task"`
	MaxTokens int    `json:"max_tokens"`
}

func (c *Client) Summarize(ctx context.Context, text string) Result {
	if c.apiKey == "" || c.endpoint == "" {
		return Unavailable(ReasonNotConfigured, nil)
	}

	body, err := json.Marshal(summarizeRequest{
		Model:     c.model,
		Input:     truncateRunes(text, MaxInputRunes),
		Task:      "summarize",
		MaxTokens: maxTokens,
	})
	if err != nil {
		return Unavailable(ReasonRequestFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Unavailable(ReasonRequestFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Unavailable(classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return Unavailable(ReasonBadStatus, fmt.Errorf("summarize endpoint returned %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Unavailable(classifyTransportError(err), err)
	}
	summary, parsed := extractSummary(raw)
	if !parsed {
		return Unavailable(ReasonBadBody, errors.New("summarize response is not a JSON object"))
	}
	if summary == "" {
		return Unavailable(ReasonEmpty, nil)
	}
	return Summary(summary)
}

func classifyTransportError(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonRequestFailed
}
