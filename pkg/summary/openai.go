package summary

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/app-sre/tabqa/pkg/table"
)

// OpenAI summarizes with a chat completion model. Each choice becomes one
// candidate so the envelope reads the same as a Gemini one.
type OpenAI struct {
	Model string

	client *openai.Client
}

var _ Summarizer = (*OpenAI)(nil)

func NewOpenAI(apiKey, model, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAI{Model: model, client: openai.NewClientWithConfig(cfg)}
}

func (o *OpenAI) Summarize(ctx context.Context, query string, t *table.Table) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(t, query)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("unable to create chat completion: %w", err)
	}

	r := &Response{Candidates: make([]Candidate, 0, len(resp.Choices))}
	for _, choice := range resp.Choices {
		r.Candidates = append(r.Candidates, Candidate{
			Content: Content{Parts: []string{choice.Message.Content}},
		})
	}

	return r.Encode()
}
