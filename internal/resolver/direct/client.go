package direct

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"albumlink/internal/resolver"
	"albumlink/internal/wait"
)

// Client issues platform search requests with a realistic browser header set,
// a bounded timeout, and a fixed post-request delay to stay under rate limits.
type Client struct {
	httpClient *http.Client
	userAgent  string
	delay      time.Duration
	sleep      wait.Sleeper
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithSleeper overrides the delay sleeper, letting tests skip real pauses.
func WithSleeper(sleep wait.Sleeper) ClientOption {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// NewClient creates a search client. Zero timeout and delay take defaults.
func NewClient(userAgent string, timeout, delay time.Duration, opts ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if delay < 0 {
		delay = 0
	}
	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		delay:      delay,
		sleep:      wait.SleepContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Get fetches the URL with the shared browser-like headers plus any
// platform-specific extras, returning the response body. Non-200 statuses are
// reported as parse-category errors so resolvers absorb them uniformly.
func (c *Client) Get(ctx context.Context, rawURL string, extra map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, resolver.Wrap(resolver.ErrNetwork, "direct", "build request", "", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	for key, value := range extra {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, resolver.Wrap(resolver.ErrNetwork, "direct", "execute request", "", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	// Every request is followed by the rate-limit delay, success or not.
	if c.delay > 0 {
		_ = c.sleep(ctx, c.delay)
	}

	if readErr != nil {
		return nil, resolver.Wrap(resolver.ErrNetwork, "direct", "read response", "", readErr)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resolver.Wrap(resolver.ErrParse, "direct", "fetch", fmt.Sprintf("status %d", resp.StatusCode), nil)
	}
	return body, nil
}

// CacheNonce builds the cache-defeating parameter value appended to search
// URLs on platforms that cache aggressively.
func CacheNonce() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + hex.EncodeToString(buf)
}
