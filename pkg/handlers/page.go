package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	tabqa "github.com/app-sre/tabqa/pkg"
	"github.com/app-sre/tabqa/pkg/client"
	"github.com/app-sre/tabqa/pkg/form"
	"github.com/app-sre/tabqa/pkg/models"
	"github.com/app-sre/tabqa/pkg/page"
	"github.com/app-sre/tabqa/pkg/query"
)

// serviceQuerier lets the form handler call the query service in-process.
// Service errors are reported the way the HTTP client would see them.
type serviceQuerier struct {
	service *query.Service
}

func (s serviceQuerier) Query(ctx context.Context, q string) (*models.QueryResponse, error) {
	resp, err := s.service.Query(ctx, q)
	if err != nil {
		var qerr *query.Error
		if errors.As(err, &qerr) {
			return nil, &client.RequestError{StatusCode: qerr.Status, Body: qerr.Message}
		}
		return nil, err
	}
	return resp, nil
}

// Page serves the query form. A POST submits the "query" field and renders
// the answer into the returned document.
func Page(cfg *tabqa.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := page.New()

		if r.Method == http.MethodPost {
			p.Query = r.FormValue("query")

			h := form.New(serviceQuerier{service: cfg.Service}, p, form.WithCharts(p))
			if err := h.Submit(r.Context(), p.Query); err != nil {
				cfg.Logger.Errorf("Unable to render query response: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				return
			}
		}

		var b bytes.Buffer
		if err := p.Render(&b); err != nil {
			cfg.Logger.Errorf("Unable to render page: %s", err)
			http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = b.WriteTo(w)
	}
}
