package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	tabqa "github.com/app-sre/tabqa/pkg"
	"github.com/app-sre/tabqa/pkg/audit"
)

// Audit records the submitted question before the query runs. The request
// body is buffered and restored for the next handler.
func Audit(cfg *tabqa.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			var b bytes.Buffer

			if _, err := io.Copy(&b, http.MaxBytesReader(w, r.Body, maxBodySize)); err != nil {
				cfg.Logger.Errorf("Unable to copy request body: %s", err)
				http.Error(w, "Unable to read request body", http.StatusBadRequest)
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

			values, err := url.ParseQuery(b.String())
			if err != nil {
				cfg.Logger.Debugf("Unable to parse request body: %s", err)
				h.ServeHTTP(w, r)
				return
			}

			user := r.Header.Get(forwardedUserHeader)
			if user == "" {
				user = anonymousUser
			}

			query := &audit.QueryData{
				Query:     values.Get("query"),
				User:      user,
				Timestamp: now.Unix(),
			}

			_ = cfg.LoggerAudit.Write(ctx, query)
			if cfg.SplunkAudit != nil {
				if err := cfg.SplunkAudit.Write(ctx, query); err != nil {
					cfg.Logger.Errorf("Unable to send audit to Splunk: %s", err)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
					return
				}
			}

			h.ServeHTTP(w, r)
		})
	}
}
