package summary

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/app-sre/tabqa/pkg/table"
)

type Gemini struct {
	Model string

	client *genai.Client
}

var _ Summarizer = (*Gemini)(nil)

// NewGemini creates a Gemini summarizer. An empty baseURL uses the public API.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}

	return &Gemini{Model: model, client: client}, nil
}

func (g *Gemini) Summarize(ctx context.Context, query string, t *table.Table) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.Model, genai.Text(Prompt(t, query)), nil)
	if err != nil {
		return "", fmt.Errorf("unable to generate content: %w", err)
	}

	r := &Response{Candidates: make([]Candidate, 0, len(resp.Candidates))}
	for _, c := range resp.Candidates {
		var parts []string
		if c.Content != nil {
			for _, p := range c.Content.Parts {
				if p != nil && p.Text != "" {
					parts = append(parts, p.Text)
				}
			}
		}
		r.Candidates = append(r.Candidates, Candidate{Content: Content{Parts: parts}})
	}

	return r.Encode()
}
