package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/copperwire/penny/internal/common"
	"github.com/copperwire/penny/internal/model"
)

// RemoteClient performs a single inference exchange with the remote service.
type RemoteClient interface {
	Infer(ctx context.Context, req model.ClassificationRequest) (string, error)
}

// HTTPConfig configures the HTTP remote client.
type HTTPConfig struct {
	Endpoint string
	APIKey   string
}

// httpClient talks to the remote inference service over HTTP. Errors are
// classified for the retry loop: network failures, timeouts, and 5xx-class
// statuses are transient; 4xx-class statuses are permanent.
type httpClient struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewHTTPClient creates a remote client for the given endpoint. Per-attempt
// timeouts come from the caller's context, not the http.Client.
func NewHTTPClient(cfg HTTPConfig) (RemoteClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: remote inference endpoint", common.ErrMissingConfig)
	}

	return &httpClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// inferRequest is the wire shape of an inference call.
type inferRequest struct {
	Context map[string]string `json:"context,omitempty"`
	Mode    string            `json:"mode"`
	Query   string            `json:"query"`
}

// Infer sends the request and returns the raw mode-dependent response body:
// free text for chat/analyze, a JSON label array for parse.
func (c *httpClient) Infer(ctx context.Context, req model.ClassificationRequest) (string, error) {
	jsonBody, err := json.Marshal(inferRequest{
		Mode:    req.Mode.String(),
		Query:   req.Query,
		Context: req.Context,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", common.Transient(fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", common.Transient(fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return string(body), nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return "", common.Transient(fmt.Errorf("remote service error (status %d): %s", resp.StatusCode, string(body)))
	default:
		return "", common.Permanent(fmt.Errorf("remote service rejected request (status %d): %s", resp.StatusCode, string(body)))
	}
}
