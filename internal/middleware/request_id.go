package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type reqIDKey struct{}

func RequestIDFrom(ctx context.Context) string {
	if s, ok := ctx.Value(reqIDKey{}).(string); ok {
		return s
	}
	return ""
}

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), reqIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
