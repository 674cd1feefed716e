package middleware

import (
	"net/http"
)

const (
	forwardedUserHeader = "X-Forwarded-User"
	anonymousUser       = "anonymous"

	maxBodySize = 1 << 20
)

type Middleware func(http.Handler) http.Handler
