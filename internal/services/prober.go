package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const probeTimeout = 10 * time.Second

// ConnectionProber verifies an API key against the data provider.
type ConnectionProber interface {
	Probe(ctx context.Context, apiKey string) (bool, error)
}

// SandboxProber accepts the keys containing "test". It is used when no
// provider URL is configured.
type SandboxProber struct{}

func (SandboxProber) Probe(_ context.Context, apiKey string) (bool, error) {
	return strings.Contains(apiKey, "test"), nil
}

// HTTPProber calls the provider URL with the API key as bearer token.
// 2xx means connected, 401 and 403 mean the key was rejected.
type HTTPProber struct {
	url    string
	client *http.Client
}

func NewHTTPProber(url string) *HTTPProber {
	return &HTTPProber{
		url:    url,
		client: &http.Client{Timeout: probeTimeout},
	}
}

func (h *HTTPProber) Probe(ctx context.Context, apiKey string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	zap.S().Debugw("probing data provider", "url", h.url)

	resp, err := h.client.Do(req)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("data provider returned %s", resp.Status)
	}
}
