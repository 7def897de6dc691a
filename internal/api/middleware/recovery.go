package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/octofit/dashboard/internal/api/response"
)

// Recovery is middleware that recovers from panics and returns a 500 error.
// Page requests get a plain text body, /api requests the JSON envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				slog.Error("panic recovered", "error", err, "path", r.URL.Path, "requestId", requestID)
				if strings.HasPrefix(r.URL.Path, "/api/") {
					response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "An unexpected error occurred", requestID)
					return
				}
				http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
