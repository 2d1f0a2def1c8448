package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Upstream allows 5 requests per second per key
	rateLimit = 5
	rateBurst = 10

	maxRetries   = 5
	initialDelay = 1 * time.Second
	maxDelay     = 32 * time.Second
)

// Client talks to the upstream parts catalog API with rate limiting and
// retry on transient failures.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		logger:      logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// ListParts fetches one page of catalog parts.
func (c *Client) ListParts(ctx context.Context, params url.Values) (*PartListResponse, error) {
	var response PartListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/parts", params, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch parts: %w", err)
	}
	return &response, nil
}

// doRequest performs an HTTP request with rate limiting and exponential
// backoff. 429 and 5xx responses retry; everything else fails fast.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, result any) error {
	fullURL := c.baseURL + endpoint
	if params != nil {
		fullURL += "?" + params.Encode()
	}

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", "BuildHub/1.0")
		if c.apiKey != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				c.logger.Warn("catalog request failed, retrying",
					"attempt", attempt+1, "max", maxRetries, "delay", delay, "error", err)
				time.Sleep(delay)
				delay = min(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))

				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if retryDuration, parseErr := time.ParseDuration(retryAfter + "s"); parseErr == nil {
						delay = retryDuration
					}
				}

				c.logger.Warn("catalog returned retryable status",
					"status", resp.StatusCode, "attempt", attempt+1, "delay", delay)
				time.Sleep(delay)
				delay = min(delay*2, maxDelay)
				continue
			}

			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		}

		decodeErr := json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if decodeErr != nil {
			return fmt.Errorf("failed to parse response: %w", decodeErr)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode >= 500
}

// BuildPartQueryParams creates the paging parameters for a parts page.
func BuildPartQueryParams(limit, offset int, updatedSince string) url.Values {
	params := url.Values{}
	params.Add("limit", fmt.Sprintf("%d", limit))
	params.Add("offset", fmt.Sprintf("%d", offset))
	params.Add("order", "updated_desc")

	if updatedSince != "" {
		params.Add("updated_since", updatedSince)
	}

	return params
}
