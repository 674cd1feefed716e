// Package query answers a question against the configured table.
package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/app-sre/tabqa/pkg/inference"
	"github.com/app-sre/tabqa/pkg/models"
	"github.com/app-sre/tabqa/pkg/summary"
	"github.com/app-sre/tabqa/pkg/table"
)

// Error carries the HTTP status and the plain-text message a client sees.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Service struct {
	Source     table.Source
	Model      inference.Answerer
	Summarizer summary.Summarizer
	Logger     *zap.SugaredLogger
}

func (s *Service) Query(ctx context.Context, text string) (*models.QueryResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &Error{Status: http.StatusBadRequest, Message: "Query not provided"}
	}

	t, err := s.Source.Load(ctx)
	if err != nil {
		var parseErr *table.ParseError
		if errors.As(err, &parseErr) {
			s.Logger.Errorf("Unable to parse table data: %s", err)
			return nil, &Error{Status: http.StatusInternalServerError, Message: "Error parsing table data", Err: err}
		}
		s.Logger.Errorf("Unable to load table data: %s", err)
		return nil, &Error{Status: http.StatusInternalServerError, Message: "Error reading table data", Err: err}
	}
	s.Logger.Debugf("Loaded table with %d columns and %d rows", len(t.Headers), t.Rows())

	resp, err := s.Model.Answer(ctx, t, text)
	if err != nil {
		s.Logger.Errorf("Unable to get answer from the model: %s", err)
		return nil, &Error{Status: http.StatusInternalServerError, Message: "Error connecting to AI model", Err: err}
	}

	if s.Summarizer != nil {
		content, err := s.Summarizer.Summarize(ctx, text, t)
		if err != nil {
			s.Logger.Errorf("Unable to generate summary: %s", err)
			return nil, &Error{
				Status:  http.StatusInternalServerError,
				Message: fmt.Sprintf("Error generating summary: %s", err),
				Err:     err,
			}
		}
		resp.Summary = content
	}

	return resp, nil
}
