package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"hzcli/internal/logging"
	"hzcli/internal/services"
)

const (
	component          = "llm"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4.1-nano"
	defaultHTTPTimeout = 30 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 400
)

// Config captures the runtime settings required to talk to the LLM.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	Temperature    float64
	MaxTokens      int
}

// DefaultHTTPTimeout returns the default timeout used for LLM requests.
func DefaultHTTPTimeout() time.Duration {
	return defaultHTTPTimeout
}

// Client wraps the chat completion API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
	api        *openai.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs an LLM client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
			Temperature:    cfg.Temperature,
			MaxTokens:      cfg.MaxTokens,
		},
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.cfg.Temperature <= 0 {
		client.cfg.Temperature = defaultTemperature
	}
	if client.cfg.MaxTokens <= 0 {
		client.cfg.MaxTokens = defaultMaxTokens
	}
	client.logger = logging.NewComponentLogger(client.logger, component)

	apiConfig := openai.DefaultConfig(client.cfg.APIKey)
	apiConfig.BaseURL = client.cfg.BaseURL
	apiConfig.HTTPClient = client.httpClient
	client.api = openai.NewClientWithConfig(apiConfig)
	return client
}

// HasAPIKey reports whether the client carries a credential.
func (c *Client) HasAPIKey() bool {
	return c != nil && c.cfg.APIKey != ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// CompleteJSON sends a single user prompt and returns the raw JSON content of
// the first choice.
func (c *Client) CompleteJSON(ctx context.Context, op, prompt string) (string, error) {
	if !c.HasAPIKey() {
		return "", services.Wrap(services.ErrAuthRequired, component, op, "API key is required for LLM operations", nil)
	}
	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: float32(c.cfg.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	start := time.Now()
	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("llm request",
		logging.String("operation", op),
		logging.String("model", c.cfg.Model),
	)
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(op, err)
	}
	logger.Debug("llm response",
		logging.String("operation", op),
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("total_tokens", resp.Usage.TotalTokens),
	)
	if len(resp.Choices) == 0 {
		return "", services.Wrap(services.ErrMalformedResponse, component, op, "response contained no choices", nil)
	}
	choice := resp.Choices[0]
	if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" {
		return "", services.Wrap(services.ErrNoResult, component, op, "model refused: "+snippet(refusal), nil)
	}
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return "", services.Wrap(services.ErrMalformedResponse, component, op,
			"empty content (finish_reason="+string(choice.FinishReason)+")", nil)
	}
	return content, nil
}

func classifyError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrUnavailable, component, op, "request aborted", err)
	}
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return services.Wrap(services.ErrAuthRequired, component, op, "credential rejected", err)
	}
	return services.Wrap(services.ErrUnavailable, component, op, "chat completion failed", err)
}
