// Package transport builds the HTTP client shared by the data clients.
package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bastionbot/bastion/metrics"
)

// New returns an HTTP client that paces outbound requests, sets a
// default User-Agent and records upstream metrics. It never retries.
func New(cfg Config) *http.Client {
	cfg.Defaults()
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &roundTripper{
			next:      http.DefaultTransport,
			limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
			userAgent: cfg.UserAgent,
		},
	}
}

type roundTripper struct {
	next      http.RoundTripper
	limiter   *rate.Limiter
	userAgent string
}

func (t *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("transport: rate limiter: %w", err)
	}

	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	host := req.URL.Host
	metrics.UpstreamRequestDuration.WithLabelValues(host).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(host, "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(host, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}
