package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey int

const requestIDKey ctxKey = iota

const (
	headerRequestID  = "X-Request-ID"
	headerSessionID  = "X-Session-ID"
	headerCustomerID = "X-Customer-ID"
)

func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return "unknown"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// LoggerMiddleware logs every request once it completes and turns panics into 500s.
func LoggerMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}

			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("request_id", requestID(r)).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Str("error", fmt.Sprintf("%v", rec)).
						Msg("panic while serving request")

					if recorder.status == 0 {
						respondError(recorder, http.StatusInternalServerError, "Internal Server Error")
					}
				}

				logger.Info().
					Str("request_id", requestID(r)).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Int("status", recorder.status).
					Dur("duration", time.Since(start)).
					Msg("request completed")
			}()

			next.ServeHTTP(recorder, r)
		})
	}
}
