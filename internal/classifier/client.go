package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/big2undey-pixel/URL-Classification/internal/model"
	"golang.org/x/net/proxy"
)

// DefaultTimeout is the default timeout for a single classification call.
const DefaultTimeout = 15 * time.Second

// maxResponseSize caps how much of the service response we read. The
// expected body is a few dozen bytes; anything larger is misbehavior.
const maxResponseSize = 64 * 1024

// Client calls the remote classification service.
//
// Design decision: We don't verify endpoint reachability in the constructor
// because:
// 1. It allows creating the client before the network is available
// 2. It separates object creation from network operations
// 3. It allows for better testing with httptest servers
type Client struct {
	// endpoint is the full predict URL, e.g. "https://host/predict".
	endpoint string

	// httpClient performs the actual requests. Replaceable for tests.
	httpClient *http.Client

	// timeout is applied per classification call.
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client) error

// WithTimeout sets the per-call timeout. Non-positive values keep the
// default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout > 0 {
			c.timeout = timeout
		}
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests and by
// callers that need custom transport behavior.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient != nil {
			c.httpClient = httpClient
		}
		return nil
	}
}

// WithSOCKS5Proxy routes classification calls through a SOCKS5 proxy at the
// given "host:port" address. Useful when the operator does not want scan
// traffic to originate from their own address.
func WithSOCKS5Proxy(proxyAddress string) Option {
	return func(c *Client) error {
		if !isValidProxyAddress(proxyAddress) {
			return ErrInvalidProxyAddress
		}

		// nil auth: a local SOCKS proxy typically requires none
		dialer, err := proxy.SOCKS5("tcp", proxyAddress, nil, proxy.Direct)
		if err != nil {
			return fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}

		c.httpClient = &http.Client{
			Transport: &http.Transport{
				DialContext: func(_ context.Context, network, addr string) (net.Conn, error) {
					return dialer.Dial(network, addr)
				},
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		}
		return nil
	}
}

// NewClient creates a classifier client for the given predict endpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Endpoint returns the configured predict endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// predictRequest is the wire format the service expects.
type predictRequest struct {
	URL string `json:"url"`
}

// predictResponse is the wire format the service returns.
type predictResponse struct {
	Prediction int `json:"prediction"`
}

// Classify sends the raw URL to the service and returns its verdict.
// The raw string is sent exactly as supplied; the service derives its own
// features. On any failure the verdict is VerdictUnknown alongside the
// error.
func (c *Client) Classify(ctx context.Context, rawURL string) (model.Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(predictRequest{URL: rawURL})
	if err != nil {
		return model.VerdictUnknown, fmt.Errorf("failed to encode classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return model.VerdictUnknown, fmt.Errorf("failed to build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.VerdictUnknown, fmt.Errorf("classify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused, then report.
		_, _ = io.CopyN(io.Discard, resp.Body, maxResponseSize)
		return model.VerdictUnknown, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var pred predictResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&pred); err != nil {
		return model.VerdictUnknown, fmt.Errorf("failed to decode classify response: %w", err)
	}

	verdict := model.VerdictFromPrediction(pred.Prediction)
	if verdict == model.VerdictUnknown {
		return model.VerdictUnknown, fmt.Errorf("%w: %d", ErrUnexpectedPrediction, pred.Prediction)
	}
	return verdict, nil
}

// isValidProxyAddress checks "host:port" format with a numeric port in
// range. A simple check rather than a URL parser because the format has no
// scheme or path.
func isValidProxyAddress(address string) bool {
	parts := strings.Split(address, ":")
	if len(parts) != 2 {
		return false
	}

	host, port := parts[0], parts[1]
	if host == "" || port == "" {
		return false
	}

	portNum := 0
	for _, c := range port {
		if c < '0' || c > '9' {
			return false
		}
		portNum = portNum*10 + int(c-'0')
		if portNum > 65535 {
			return false
		}
	}
	return portNum >= 1
}
