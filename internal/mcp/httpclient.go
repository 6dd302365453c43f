package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/vigor/internal/models"
	"github.com/claude/vigor/internal/storage"
)

// HTTPClient implements DataSource by calling the Vigor REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func dateParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format("2006-01-02"))
	v.Set("end", end.Format("2006-01-02"))
	return v
}

func (c *HTTPClient) QueryDailySamples(ctx context.Context, start, end time.Time) ([]models.DailySample, error) {
	body, err := c.get(ctx, "/api/v1/samples", dateParams(start, end))
	if err != nil {
		return nil, err
	}

	var samples []models.DailySample
	if err := json.Unmarshal(body, &samples); err != nil {
		return nil, fmt.Errorf("httpclient: decode samples: %w", err)
	}
	return samples, nil
}

// QuerySampleWindow fetches the limit calendar days ending at end. Unlike the
// local store it cannot reach past gaps for additional rows, but the span
// already covers the full baseline lookback so scoring is unaffected.
func (c *HTTPClient) QuerySampleWindow(ctx context.Context, end time.Time, limit int) ([]models.DailySample, error) {
	start := end.AddDate(0, 0, -(limit - 1))
	return c.QueryDailySamples(ctx, start, end)
}

func (c *HTTPClient) LatestSampleDate(ctx context.Context) (*time.Time, error) {
	stats, err := c.GetDataStats(ctx)
	if err != nil {
		return nil, err
	}
	return stats.LatestDate, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
