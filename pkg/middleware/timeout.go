package middleware

import (
	"net/http"
	"time"
)

const timeoutMessage = "Request timed out"

// Timeout bounds the handler run time. A non-positive timeout disables it.
func Timeout(timeout time.Duration) Middleware {
	return func(h http.Handler) http.Handler {
		if timeout <= 0 {
			return h
		}
		return http.TimeoutHandler(h, timeout, timeoutMessage)
	}
}
