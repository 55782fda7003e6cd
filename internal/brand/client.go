// Package brand calls the brand/logo generator webhook.
package brand

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	// ErrNoResult is returned when the webhook answers without an output.
	ErrNoResult = errors.New("no result generated")
	// ErrNotConfigured is returned when no webhook URL is set.
	ErrNotConfigured = errors.New("brand webhook is not configured")
)

// Request is the payload posted to the webhook.
type Request struct {
	Industry string `json:"industry" validate:"required,max=200"`
	Style    string `json:"style" validate:"required,max=200"`
}

// Result is the webhook's answer.
type Result struct {
	Output   string `json:"output"`
	Slogan   string `json:"slogan,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Generator produces a brand from an industry and a style.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Client posts to a fixed webhook URL.
type Client struct {
	url  string
	http *http.Client
}

var _ Generator = (*Client)(nil)

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{url: url, http: &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}}
}

func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal brand request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call brand webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("brand webhook HTTP %d", resp.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode brand response: %w", err)
	}
	if out.Output == "" {
		return nil, ErrNoResult
	}
	return &out, nil
}
