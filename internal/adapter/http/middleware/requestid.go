package middleware

import (
	"net/http"

	wrap "github.com/pasealo/walk-tracking-system/pkg/logger/wrapper"
	"github.com/pasealo/walk-tracking-system/pkg/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID for log correlation. An ID
// supplied by the caller is kept, otherwise one is generated.
func (h *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			generated, err := uuid.New()
			if err == nil {
				id = generated.String()
			}
		}

		if id != "" {
			w.Header().Set(requestIDHeader, id)
			r = r.WithContext(wrap.WithRequestID(r.Context(), id))
		}

		next.ServeHTTP(w, r)
	})
}
