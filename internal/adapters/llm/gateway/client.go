package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/ports"
)

// CredentialName is the configuration key holding the gateway API key.
const CredentialName = "AI_GATEWAY_API_KEY"

// Client implements ports.StoryWriter against an OpenAI-compatible gateway.
type Client struct {
	api    *openai.Client
	apiKey string
	model  string
	logger *slog.Logger
}

// NewClient builds a gateway client. An empty apiKey is allowed here;
// every Write is then refused through Ready.
func NewClient(httpClient *http.Client, apiKey, baseURL, model string, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
		model:  model,
		logger: logger,
	}
}

func (c *Client) Ready() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return &domain.MissingCredentialError{Name: CredentialName}
	}
	return nil
}

func (c *Client) Write(ctx context.Context, in ports.WriteInput) (ports.WriteOutput, error) {
	if err := c.Ready(); err != nil {
		return ports.WriteOutput{}, err
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: in.System},
			{Role: openai.ChatMessageRoleUser, Content: in.User},
		},
	})
	duration := time.Since(start)
	aiRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	if err != nil {
		err = classify(err)
		status := statusError
		if errors.Is(err, domain.ErrUpstreamLLM) {
			status = statusUpstreamError
		}
		aiRequestsTotal.WithLabelValues(c.model, in.Emotion, status).Inc()
		return ports.WriteOutput{}, err
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		aiRequestsTotal.WithLabelValues(c.model, in.Emotion, statusEmpty).Inc()
		c.logger.WarnContext(ctx, "inference API returned no content",
			"model", c.model, "emotion", in.Emotion, "choices", len(resp.Choices))
		return ports.WriteOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, domain.ErrEmptyStory)
	}

	aiRequestsTotal.WithLabelValues(c.model, in.Emotion, statusSuccess).Inc()

	usage := ports.Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if usage.TotalTokens > 0 {
		aiTokens.WithLabelValues(c.model, "prompt").Observe(float64(usage.PromptTokens))
		aiTokens.WithLabelValues(c.model, "completion").Observe(float64(usage.CompletionTokens))
		aiTokens.WithLabelValues(c.model, "total").Observe(float64(usage.TotalTokens))
	}

	c.logger.DebugContext(ctx, "story generated",
		"model", c.model,
		"emotion", in.Emotion,
		"duration_ms", duration.Milliseconds(),
		"chars", len(resp.Choices[0].Message.Content),
		"total_tokens", usage.TotalTokens,
	)

	return ports.WriteOutput{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: resp.Model,
		Usage: usage,
	}, nil
}

// classify turns go-openai errors carrying an HTTP status into
// domain.UpstreamStatusError; anything else (transport, decoding) is
// wrapped unchanged.
func classify(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &domain.UpstreamStatusError{StatusCode: reqErr.HTTPStatusCode, Body: string(reqErr.Body)}
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &domain.UpstreamStatusError{StatusCode: apiErr.HTTPStatusCode, Body: apiErrorBody(apiErr)}
	}
	return fmt.Errorf("chat completion: %w", err)
}

// apiErrorBody flattens a decoded error object back into one loggable line.
func apiErrorBody(e *openai.APIError) string {
	parts := []string{e.Message}
	if e.Type != "" {
		parts = append(parts, "type="+e.Type)
	}
	if e.Code != nil {
		parts = append(parts, fmt.Sprintf("code=%v", e.Code))
	}
	if e.Param != nil && *e.Param != "" {
		parts = append(parts, "param="+*e.Param)
	}
	return strings.Join(parts, " ")
}
