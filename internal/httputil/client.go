// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the outbound HTTP client shared by provider adapters.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

// maxErrorBody caps how much of a non-2xx body is kept for the error message.
const maxErrorBody = 512

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int

	// RetryAfter is the raw Retry-After header, if the server sent one.
	RetryAfter string

	// Body holds the start of the response body.
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d", e.Code)
	if e.RetryAfter != "" {
		msg += ", retry after " + e.RetryAfter
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client sends rate-limited GET requests for one provider. A nil Limiter
// means unlimited. The zero value uses http.DefaultClient.
type Client struct {
	HTTP      *http.Client
	Limiter   *rate.Limiter
	UserAgent string
}

// New builds a client from the shared HTTP settings and one provider's limits.
func New(hc types.HTTPConfig, pc types.ProviderConfig) *Client {
	c := &Client{
		HTTP:      &http.Client{Timeout: hc.Timeout},
		UserAgent: hc.UserAgent,
	}
	if pc.RequestsPerSecond > 0 {
		burst := pc.Burst
		if burst <= 0 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(pc.RequestsPerSecond), burst)
	}
	return c
}

// Get waits for a rate-limit token, then issues a GET. The wait honours
// ctx, so a token that would arrive after the deadline fails immediately.
// Responses outside 2xx are closed and returned as *StatusError.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{
			Code:       resp.StatusCode,
			RetryAfter: resp.Header.Get("Retry-After"),
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

// GetJSON issues a GET and decodes a JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, header http.Header, v any) error {
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Accept") == "" {
		header.Set("Accept", "application/json")
	}
	resp, err := c.Get(ctx, url, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
