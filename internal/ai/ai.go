package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no API token is available; callers
// fall back to deterministic summaries.
var ErrNotConfigured = errors.New("generation service not configured")

// Generator produces text for a prompt. Implemented by Client;
// consumers accept the interface so tests can stub generation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client calls a text-generation inference endpoint. A secondary
// endpoint is attempted once when the primary fails; there is no
// further retry — generation is best-effort.
type Client struct {
	primary   string
	secondary string
	token     string
	client    *http.Client

	maxNewTokens int
	temperature  float64
}

// Options configures generation parameters sent with each request.
type Options struct {
	MaxNewTokens int
	Temperature  float64
}

func New(primary, secondary, token string, opts Options) *Client {
	if opts.MaxNewTokens <= 0 {
		opts.MaxNewTokens = 180
	}
	if opts.Temperature <= 0 {
		opts.Temperature = 0.4
	}
	return &Client{
		primary:      primary,
		secondary:    secondary,
		token:        token,
		client:       &http.Client{Timeout: 20 * time.Second},
		maxNewTokens: opts.MaxNewTokens,
		temperature:  opts.Temperature,
	}
}

type generateRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

// Generate sends the prompt to the primary endpoint, then to the
// secondary if the primary fails in any way. The returned text has
// already been extracted from the response payload.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.token == "" {
		return "", ErrNotConfigured
	}

	text, err := c.call(ctx, c.primary, prompt)
	if err == nil {
		return text, nil
	}
	if c.secondary == "" {
		return "", err
	}

	text, err2 := c.call(ctx, c.secondary, prompt)
	if err2 != nil {
		return "", fmt.Errorf("primary: %v; secondary: %w", err, err2)
	}
	return text, nil
}

func (c *Client) call(ctx context.Context, endpoint, prompt string) (string, error) {
	body, _ := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: parameters{
			MaxNewTokens: c.maxNewTokens,
			Temperature:  c.temperature,
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("generation API %d: %s", resp.StatusCode, string(b))
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return Extract(payload)
}
