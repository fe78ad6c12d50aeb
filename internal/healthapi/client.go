// Package healthapi is the HTTP client for the platform health service.
// The snapshot shape is owned by that service; this client only decodes
// the subset the reconciliation layer depends on.
package healthapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/opsdeck/opsdeck/internal/telemetry"
)

const (
	defaultTimeout   = 30 * time.Second
	snapshotPath     = "/api/v1/health/snapshot"
	maxErrorBodySize = 1 << 20 // 1 MiB
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// GetOptions controls a single snapshot fetch. ForceRefresh asks the
// health service to bypass its own server-side cache.
type GetOptions struct {
	ForceRefresh bool
}

// New creates a health API client. The base URL is required; the API key
// is optional for deployments that sit behind network auth.
func New(baseURL, apiKey string) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("health api base URL is required")
	}
	return &Client{
		BaseURL: base,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (c *Client) ensureClient() error {
	if c.BaseURL == "" {
		return errors.New("health api base URL is required")
	}
	if c.HTTP == nil {
		return errors.New("health api http client is not configured")
	}
	return nil
}

// GetSnapshot fetches one complete health snapshot.
func (c *Client) GetSnapshot(ctx context.Context, opts GetOptions) (*telemetry.HealthSnapshot, error) {
	if err := c.ensureClient(); err != nil {
		return nil, err
	}

	endpoint := c.BaseURL + snapshotPath
	if opts.ForceRefresh {
		query := url.Values{"forceRefresh": []string{"true"}}
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("health api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var snapshot telemetry.HealthSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode health snapshot: %w", err)
	}
	return &snapshot, nil
}
