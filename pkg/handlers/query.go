package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	tabqa "github.com/app-sre/tabqa/pkg"
	"github.com/app-sre/tabqa/pkg/query"
)

// Query answers the form-encoded "query" field. Failures are reported as
// plain text with the status chosen by the query service.
func Query(cfg *tabqa.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := cfg.Service.Query(r.Context(), r.FormValue("query"))
		if err != nil {
			var qerr *query.Error
			if errors.As(err, &qerr) {
				http.Error(w, qerr.Message, qerr.Status)
				return
			}
			cfg.Logger.Errorf("Unable to answer query: %s", err)
			http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(resp); err != nil {
			cfg.Logger.Errorf("Unable to encode query response: %s", err)
		}
	}
}
