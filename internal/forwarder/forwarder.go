// Package forwarder is the opaque backend-index request-forwarder: it
// relays a request's method, headers, and body to the configured backend
// base URL, preserving the inbound path and query.
package forwarder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// ErrForward wraps a failure reaching the backend.
type ErrForward struct {
	Err error
}

func (e *ErrForward) Error() string {
	return fmt.Sprintf("forward to backend failed: %v", e.Err)
}

func (e *ErrForward) Unwrap() error {
	return e.Err
}

// Response is a relayed backend response: status, headers, and body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client forwards inbound requests to a single configured backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client targeting baseURL (e.g. the solr_kr config value).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Forward issues method against c.baseURL+pathAndQuery, with header and
// body preserved, and returns the relayed response.
func (c *Client) Forward(ctx context.Context, method, pathAndQuery string, header http.Header, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+pathAndQuery, bytes.NewReader(body))
	if err != nil {
		return nil, &ErrForward{Err: err}
	}
	req.Header = header.Clone()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ErrForward{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrForward{Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
