package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/aspectpath/pkg/buildinfo"
	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
	"github.com/matzehuels/aspectpath/pkg/observability"
)

// Client defaults.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultAttempts = 3
	DefaultDelay    = time.Second
	MaxBodySize     = 8 << 20
)

// Client performs GET requests with retries for transient failures.
// It is safe for concurrent use.
type Client struct {
	HTTP      *http.Client
	Attempts  int
	Delay     time.Duration
	UserAgent string
}

// NewClient returns a client with the given per-request timeout.
// A zero timeout selects [DefaultTimeout].
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		Attempts:  DefaultAttempts,
		Delay:     DefaultDelay,
		UserAgent: buildinfo.UserAgent(),
	}
}

// Get fetches rawURL and returns the response body.
//
// Errors carry an application code: NOT_FOUND for 404, TIMEOUT when the
// context deadline passes, NETWORK_ERROR for everything else. Network
// failures, 429 and 5xx responses are retried.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid URL %q", rawURL)
	}

	var body []byte
	err = Retry(ctx, c.Attempts, c.Delay, func() error {
		var err error
		body, err = c.get(ctx, u)
		return err
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrap(apperrors.ErrCodeTimeout, err, "fetch %s", rawURL)
		}
		if apperrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) ([]byte, error) {
	hooks := observability.HTTP()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json, application/toml;q=0.9, */*;q=0.1")

	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "%s not found", u)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, RetryableAfter(fmt.Errorf("%s: %s", u, resp.Status), parseRetryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode >= 300:
		return nil, apperrors.New(apperrors.ErrCodeNetwork, "%s: unexpected status %s", u, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, Retryable(err)
	}
	if len(body) > MaxBodySize {
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "%s: response larger than %d bytes", u, MaxBodySize)
	}
	return body, nil
}

// parseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date. Unparseable or past values yield 0.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if t, err := http.ParseTime(v); err == nil {
		return max(time.Until(t), 0)
	}
	return 0
}
