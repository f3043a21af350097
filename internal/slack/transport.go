package slack

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// cookieTransport wraps an http.RoundTripper to add cookie headers
type cookieTransport struct {
	transport http.RoundTripper
	cookie    string
}

func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Cookie", "d="+t.cookie)
	return t.transport.RoundTrip(req)
}

// newCookieTransport creates a transport with cookie authentication
func newCookieTransport(cookie string) *cookieTransport {
	return &cookieTransport{
		transport: http.DefaultTransport,
		cookie:    cookie,
	}
}

// withRetry runs fn and handles Slack rate limiting by respecting the
// Retry-After header and automatically retrying. Any other error is
// returned to the caller unchanged.
func withRetry(ctx context.Context, logger *zap.Logger, fn func() error) error {
	for {
		err := fn()
		if err == nil {
			return nil
		}

		var rateLimitErr *slack.RateLimitedError
		if !errors.As(err, &rateLimitErr) {
			return err
		}

		logger.Warn("Rate limited by Slack API",
			zap.Duration("retry_after", rateLimitErr.RetryAfter))

		// Wait for the duration specified in Retry-After header
		select {
		case <-time.After(rateLimitErr.RetryAfter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
