// Package perplexity implements the chat-completion service against the
// Perplexity API.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/papergrade/papergrade"
)

// Defaults for the Perplexity chat-completions endpoint.
const (
	DefaultBaseURL     = "https://api.perplexity.ai"
	DefaultModel       = "sonar-pro"
	DefaultTemperature = 0.3
	DefaultTimeout     = 60 * time.Second
)

var _ papergrade.ChatService = (*Client)(nil)

// Client calls the Perplexity chat-completions API.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(c *Client) {
		c.temperature = temperature
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Perplexity API client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, papergrade.Errorf(papergrade.EINVALID, "perplexity: API key is required")
	}
	c := &Client{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []papergrade.Message `json:"messages"`
	Temperature float64              `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CreateCompletion sends the conversation to the chat-completions endpoint
// and returns the first choice's message content.
func (c *Client) CreateCompletion(ctx context.Context, messages []papergrade.Message) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("perplexity: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("perplexity: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", papergrade.Errorf(papergrade.EUNAVAILABLE, "perplexity: request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", papergrade.Errorf(papergrade.EUNAVAILABLE, "perplexity: unexpected status %d: %s", resp.StatusCode, raw)
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", papergrade.Errorf(papergrade.EINTERNAL, "perplexity: decode response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", papergrade.Errorf(papergrade.EINTERNAL, "perplexity: response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
