// Package client talks to the story relay and tracks the picker state
// of one user session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

// ErrMalformedResponse is returned when a 2xx reply carries no story.
var ErrMalformedResponse = errors.New("malformed relay response")

// ResponseError is a non-2xx reply from the relay.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay status %d: %s", e.StatusCode, e.Message)
}

// Client calls POST /generate-story on a relay. It never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sessionID  string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionID sends id as X-Client-Session on every call.
func WithSessionID(id string) Option {
	return func(c *Client) { c.sessionID = id }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Emotion domain.Emotion `json:"emotion"`
}

type generateResponse struct {
	Story string `json:"story"`
	Error string `json:"error"`
}

// GenerateStory makes exactly one relay call for emotion.
func (c *Client) GenerateStory(ctx context.Context, emotion domain.Emotion) (string, error) {
	body, err := json.Marshal(generateRequest{Emotion: emotion})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-story", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set("X-Client-Session", c.sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out generateResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ResponseError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, decodeErr)
	}
	if out.Story == "" {
		return "", fmt.Errorf("%w: empty story", ErrMalformedResponse)
	}

	return out.Story, nil
}
