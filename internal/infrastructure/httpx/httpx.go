package httpx

import (
	"net"
	"net/http"
	"time"
)

const userAgent = "fxrates-etl/1.0"

// Client sends a single attempt per request; there is no retry layer.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// New returns a client whose whole request (dial, headers, body) is bounded by timeout.
func New(timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		ForceAttemptHTTP2:     true,
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: userAgent,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	return c.HTTP.Do(req)
}
