package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	v1 "github.com/tupyy/property-search-agent/api/v1"
	"github.com/tupyy/property-search-agent/internal/models"
)

const apiV1 = "/api/v1"

// Client calls the property backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(u.String(), "/") + apiV1,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) IsConfigured(ctx context.Context) (bool, error) {
	var resp v1.ConfigurationStatus
	if err := c.do(ctx, http.MethodGet, "/configuration/status", nil, &resp); err != nil {
		return false, err
	}
	return resp.Configured, nil
}

// Configuration returns the stored configuration with the API key masked.
func (c *Client) Configuration(ctx context.Context) (*models.AdminConfiguration, error) {
	var resp v1.Configuration
	if err := c.do(ctx, http.MethodGet, "/configuration", nil, &resp); err != nil {
		return nil, err
	}
	cfg := resp.ToModel()
	if resp.UpdatedAt != nil {
		cfg.UpdatedAt = *resp.UpdatedAt
	}
	return &cfg, nil
}

func (c *Client) ListMunicipalities(ctx context.Context) ([]models.ReferenceEntity, error) {
	var resp []v1.ReferenceEntity
	if err := c.do(ctx, http.MethodGet, "/municipalities", nil, &resp); err != nil {
		return nil, err
	}
	return v1.ToReferenceModels(resp), nil
}

func (c *Client) ListCollections(ctx context.Context) ([]models.ReferenceEntity, error) {
	var resp []v1.ReferenceEntity
	if err := c.do(ctx, http.MethodGet, "/collections", nil, &resp); err != nil {
		return nil, err
	}
	return v1.ToReferenceModels(resp), nil
}

func (c *Client) SearchProperties(ctx context.Context, criteria models.SearchCriteria) ([]models.PropertyRecord, error) {
	var req v1.SearchRequest
	req.FromModel(criteria)

	var resp v1.SearchResponse
	if err := c.do(ctx, http.MethodPost, "/properties/search", req, &resp); err != nil {
		return nil, err
	}
	return resp.ToModel(), nil
}

func (c *Client) SaveConfiguration(ctx context.Context, cfg models.AdminConfiguration) error {
	req := v1.Configuration{
		ApiKey:            cfg.APIKey,
		MunicipalityCodes: cfg.MunicipalityCodes,
		IsActive:          cfg.IsActive,
	}
	return c.do(ctx, http.MethodPut, "/configuration", req, nil)
}

func (c *Client) TestConnection(ctx context.Context, apiKey string) (bool, error) {
	var resp v1.ConnectionTestResponse
	if err := c.do(ctx, http.MethodPost, "/configuration/test", v1.ConnectionTestRequest{ApiKey: apiKey}, &resp); err != nil {
		return false, err
	}
	return resp.Connected, nil
}

// do sends the request and decodes the response into out. Non-2xx answers
// become *models.RemoteError carrying the backend message when there is one.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	zap.S().Named("backend").Debugw("request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newRemoteError(resp, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func newRemoteError(resp *http.Response, body []byte) error {
	remoteErr := &models.RemoteError{
		Err: fmt.Errorf("%s %s: %s", resp.Request.Method, resp.Request.URL.Path, resp.Status),
	}

	var apiErr v1.Error
	if err := json.Unmarshal(body, &apiErr); err == nil {
		remoteErr.Message = apiErr.Message
	}

	return remoteErr
}
