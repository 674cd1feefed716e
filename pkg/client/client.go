// Package client submits questions to a tabqa server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/app-sre/tabqa/pkg/models"
	"github.com/app-sre/tabqa/pkg/version"
)

const queryPath = "/query"

// RequestError is returned for any non-2xx reply. Body is the server's
// plain-text explanation.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return e.Body
}

type Client struct {
	BaseURL string

	client *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func New(baseURL string, options ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Query issues one form-encoded POST and decodes the JSON reply.
func (c *Client) Query(ctx context.Context, query string) (*models.QueryResponse, error) {
	form := url.Values{"query": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+queryPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("unable to create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", fmt.Sprintf("tabqa/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to send query request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("unable to read error response body: %w", err)
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimRight(string(body), "\n")}
	}

	var out models.QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("unable to decode query response: %w", err)
	}

	return &out, nil
}
