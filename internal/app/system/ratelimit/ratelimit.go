// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net/http"
	"time"

	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/go-chi/httprate"
)

// MsgTooMany is the body message for a rejected request.
const MsgTooMany = "Too many requests, please try again later"

// ByRealIP limits each client (keyed by X-Forwarded-For / X-Real-IP, then
// RemoteAddr) to requests per window. A non-positive requests value
// disables limiting.
func ByRealIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpjson.Fail(w, http.StatusTooManyRequests, MsgTooMany)
		}),
	)
}
