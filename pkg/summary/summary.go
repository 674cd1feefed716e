// Package summary produces and reads natural-language summaries of answers.
//
// A summary travels as a JSON-encoded envelope shaped like a generative model
// reply: {"Candidates":[{"Content":{"Parts":["..."]}}]}. Only the first
// candidate is displayed.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/app-sre/tabqa/pkg/table"
)

const promptFormat = "Given the following data:\n\n%s\n\n%s"

type Summarizer interface {
	Summarize(ctx context.Context, query string, t *table.Table) (string, error)
}

type Response struct {
	Candidates []Candidate
}

type Candidate struct {
	Content Content
}

type Content struct {
	Parts []string
}

func (r *Response) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("unable to marshal summary: %w", err)
	}
	return string(b), nil
}

func Decode(s string) (*Response, error) {
	var r Response
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, fmt.Errorf("unable to unmarshal summary: %w", err)
	}
	return &r, nil
}

// Text joins the parts of the first candidate with a single space and strips
// every '*' markdown marker.
func Text(s string) (string, error) {
	r, err := Decode(s)
	if err != nil {
		return "", err
	}
	if len(r.Candidates) == 0 {
		return "", errors.New("summary without candidates")
	}

	text := strings.Join(r.Candidates[0].Content.Parts, " ")
	return strings.ReplaceAll(text, "*", ""), nil
}

func Prompt(t *table.Table, query string) string {
	return fmt.Sprintf(promptFormat, t.String(), query)
}
