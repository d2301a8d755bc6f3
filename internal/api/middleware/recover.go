package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/staff-api/internal/api/shared"
	"github.com/phrazzld/staff-api/internal/platform/logger"
)

// Recoverer converts a panic during request handling into a structured 500
// response. Unlike chi's stock recoverer it guarantees a JSON body, so no
// request terminates without one.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					// ALLOW-PANIC: net/http uses this sentinel to abort the handler
					panic(rec)
				}

				log := logger.FromContext(r.Context())
				log.Error("panic recovered during request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec))

				shared.RespondWithJSON(w, r, http.StatusInternalServerError, shared.ErrorResponse{
					Error:   "InternalServerError",
					Message: fmt.Sprint(rec),
					TraceID: shared.GetTraceID(r.Context()),
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
