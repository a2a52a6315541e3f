// Package client wraps the upstream chat completion API behind a single
// send call with bounded exponential backoff.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mentora-ai/mentora/pkg/models"
)

const completionsPath = "/v1/chat/completions"

// Defaults applied when the retry configuration is zero-valued.
const (
	defaultMaxAttempts = 3
	defaultBackoff     = time.Second
)

// Options tune a single send call.
type Options struct {
	Model       string
	Temperature *float64
	MaxTokens   *int
}

// Reply is the assistant's answer plus the exact token usage the API
// billed for it. Only replies from definitive success responses are ever
// returned; usage from failed attempts is discarded.
type Reply struct {
	Content string
	Usage   models.Usage
}

// Client talks to one OpenAI-compatible provider.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	maxAttempts int
	backoff     time.Duration
}

// New creates a Client. maxAttempts and backoff fall back to defaults
// when non-positive.
func New(baseURL, apiKey string, maxAttempts int, backoff time.Duration) *Client {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		maxAttempts: maxAttempts,
		backoff:     backoff,
	}
}

// Send posts the message list and returns the assistant reply. Transport
// errors, 429 and 5xx responses are retried with delays doubling per
// attempt, up to the configured attempt limit.
func (c *Client) Send(ctx context.Context, messages []models.ChatMessage, opts Options) (*Reply, error) {
	payload, err := json.Marshal(models.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	delay := c.backoff
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		res, err := c.do(ctx, payload)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if isRetryable(res.statusCode) {
			lastErr = fmt.Errorf("upstream status %d", res.statusCode)
			continue
		}
		if res.statusCode != http.StatusOK {
			return nil, fmt.Errorf("upstream status %d: %s", res.statusCode, trimmed(res.body))
		}
		return decodeReply(res.body)
	}
	return nil, fmt.Errorf("send failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// upstreamResult holds the response from a single attempt.
type upstreamResult struct {
	statusCode int
	body       []byte
}

func (c *Client) do(ctx context.Context, payload []byte) (*upstreamResult, error) {
	target, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String()+completionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &upstreamResult{statusCode: resp.StatusCode, body: body}, nil
}

func decodeReply(body []byte) (*Reply, error) {
	var cr models.ChatCompletionResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("upstream returned no choices")
	}
	reply := &Reply{Content: cr.Choices[0].Message.Content}
	if cr.Usage != nil {
		reply.Usage = cr.Usage.ToUsage()
	}
	return reply, nil
}

// isRetryable reports whether a status code warrants another attempt.
func isRetryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func trimmed(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
