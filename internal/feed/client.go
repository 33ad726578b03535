package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches raw product records from the supplier inventory feed.
// The feed is a single GET endpoint selecting an inventory segment and a
// trailing sales window in days.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	segment     string
	dateRange   int
	rateLimiter *rate.Limiter
}

// NewClient creates a new inventory feed client
func NewClient(baseURL, segment string, dateRange int) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		segment:     segment,
		dateRange:   dateRange,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 1), // the feed is a shared upstream
	}
}

// FetchRaw performs one GET against the feed and returns the undecoded
// record list. Records are kept as raw JSON so that one malformed element
// fails on its own during per-record decoding instead of poisoning the
// whole batch.
func (c *Client) FetchRaw(ctx context.Context) ([]json.RawMessage, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("type", "category")
	params.Set("query", c.segment)
	params.Set("dateRange", strconv.Itoa(c.dateRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed response: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("feed response is not a product list: %w", err)
	}

	return records, nil
}
