package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/printstock/internal/logger"
)

// requestLogger attaches a request-scoped zap logger to the context and logs
// one line per request once it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		l := logger.L().With(logger.String("request_id", middleware.GetReqID(r.Context())))
		ctx := logger.WithLogger(r.Context(), l)

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info(ctx, "http request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Int("bytes", ww.BytesWritten()),
			logger.Duration("duration", time.Since(start)),
		)
	})
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := s.auth.sessionEmail(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody{Detail: "authentication required"})
			return
		}

		ctx := logger.WithLogger(r.Context(), logger.FromContext(r.Context()).With(logger.String("user", email)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
