package client

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimitTransport paces outgoing requests. Waiting honours the request
// context, so a cancelled call never reaches the wire.
type rateLimitTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// WithRateLimit caps the client at rps requests per second with the given
// burst. Requests over the limit wait; none are dropped or retried.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 {
			return fmt.Errorf("rate limit must be > 0")
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}
