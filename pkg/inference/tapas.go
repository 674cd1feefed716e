// Package inference talks to the table question answering model.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/app-sre/tabqa/pkg/models"
	"github.com/app-sre/tabqa/pkg/table"
	"github.com/app-sre/tabqa/pkg/version"
)

const (
	connectTimeout = 5 * time.Second
	requestTimeout = 1 * time.Minute
)

// Answerer answers a question about a table.
type Answerer interface {
	Answer(ctx context.Context, t *table.Table, query string) (*models.QueryResponse, error)
}

type payload struct {
	Table *table.Table `json:"table"`
	Query string       `json:"query"`
}

// TapasClient calls a TAPAS model hosted on the HuggingFace inference API.
type TapasClient struct {
	URL   string
	Token string

	client *http.Client
}

var _ Answerer = (*TapasClient)(nil)

type Option func(*TapasClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *TapasClient) {
		c.client = client
	}
}

func NewTapasClient(url, token string, options ...Option) *TapasClient {
	c := &TapasClient{URL: url, Token: token}

	c.client = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *TapasClient) Answer(ctx context.Context, t *table.Table, query string) (*models.QueryResponse, error) {
	content, err := json.Marshal(&payload{Table: t, Query: query})
	if err != nil {
		return nil, fmt.Errorf("unable to marshal inference request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("unable to create inference request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("tabqa/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to send inference request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read inference response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("inference request failed: %s (%d)", bytes.TrimSpace(body), resp.StatusCode)
	}

	var answer models.QueryResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("unable to unmarshal inference response: %w", err)
	}
	answer.Summary = ""

	return &answer, nil
}
