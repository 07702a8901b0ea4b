// Package catalog provides the HTTP client for the extragalactic
// catalog cone-search service that feeds the clustering pipeline.
//
// The client issues one region query and hands back the service's ad
// hoc tabular schema as a galaxy.RawTable. It performs no retries and
// no validation of the remote schema: the first transport, status or
// decode failure is returned to the caller, who is expected to treat
// it as fatal.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"skyclust/internal/galaxy"
)

// Config holds catalog client settings.
type Config struct {
	// BaseURL is the root of the cone-search service.
	BaseURL string
	// Timeout bounds a single HTTP exchange.
	Timeout time.Duration
	// RateLimit and Burst pace outbound queries so batch runs stay
	// polite to the shared service. Zero RateLimit disables pacing.
	RateLimit float64
	Burst     int
}

// Client queries the catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a catalog client. A nil logger falls back to
// slog.Default.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger,
	}
}

// Region is a sky region for a cone search. RA and Dec are the center
// in the catalog's sexagesimal form ("12h30m00s", "+12d00m00s");
// RadiusDeg is the search radius in degrees.
type Region struct {
	RA        string
	Dec       string
	RadiusDeg float64
}

// QueryOptions carry the remaining cone-search parameters.
type QueryOptions struct {
	// Equinox of the coordinate frame, typically "J2000".
	Equinox string
	// Table is the catalog result table to search, typically "galaxies".
	Table string
	// MaxResults caps the number of returned rows. Zero means the
	// service default.
	MaxResults int
}

// searchResponse is the service's tabular result schema: a declared
// column list and one object per row. Row values may be numbers,
// strings or null depending on the column.
type searchResponse struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// QueryRegion runs one cone search and returns the raw result table.
func (c *Client) QueryRegion(ctx context.Context, region Region, opts QueryOptions) (*galaxy.RawTable, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	endpoint, err := c.searchURL(region, opts)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "querying catalog region",
		slog.String("ra", region.RA),
		slog.String("dec", region.Dec),
		slog.Float64("radius_deg", region.RadiusDeg),
		slog.Int("max_results", opts.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	raw := toRawTable(&result)
	c.logger.InfoContext(ctx, "catalog query complete",
		slog.Int("rows", len(raw.Rows)),
		slog.Duration("duration", time.Since(start)))
	return raw, nil
}

func (c *Client) searchURL(region Region, opts QueryOptions) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid catalog base URL %q: %w", c.baseURL, err)
	}
	u = u.JoinPath("search")

	q := u.Query()
	q.Set("ra", region.RA)
	q.Set("dec", region.Dec)
	q.Set("radius", strconv.FormatFloat(region.RadiusDeg, 'f', -1, 64)+"d")
	if opts.Equinox != "" {
		q.Set("equinox", opts.Equinox)
	}
	if opts.Table != "" {
		q.Set("table", opts.Table)
	}
	if opts.MaxResults > 0 {
		q.Set("max", strconv.Itoa(opts.MaxResults))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// toRawTable keeps the numeric cells of each row. Nulls and
// non-numeric columns (object names, type codes) become missing
// values, which cleaning later drops where they matter.
func toRawTable(result *searchResponse) *galaxy.RawTable {
	raw := &galaxy.RawTable{
		Columns: result.Columns,
		Rows:    make([]map[string]float64, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		converted := make(map[string]float64, len(row))
		for col, v := range row {
			if f, ok := v.(float64); ok {
				converted[col] = f
			}
		}
		raw.Rows = append(raw.Rows, converted)
	}
	return raw
}
