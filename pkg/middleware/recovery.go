package middleware

import (
	"errors"
	"net/http"

	tabqa "github.com/app-sre/tabqa/pkg"
)

func Recovery(cfg *tabqa.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					cfg.Logger.Errorf("Recovered from an error: %s", rec)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}
