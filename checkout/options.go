package checkout

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const DefaultTimeout = 30 * time.Second

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) { c.endpoints = NewEndpoints(base) }
}

// WithHTTPClient uses a copy of hc, including its timeout, instead of the
// default client. A nil hc keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.baseHTTP = hc
		}
	}
}

// WithTimeout overrides the request timeout, whichever option comes first.
// Non-positive durations are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// httpClient builds the client used by the transport. The caller's client
// is never modified.
func (c *Client) httpClient() *http.Client {
	hc := &http.Client{Timeout: DefaultTimeout}
	if c.baseHTTP != nil {
		cp := *c.baseHTTP
		hc = &cp
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	return hc
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.tr.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.tr.metrics = m }
}

func withClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}
