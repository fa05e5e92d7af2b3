package server

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"bookvenue/api"
)

const (
	AUTHORIZATION_HEADER = "Authorization"
	REQUEST_ID_HEADER    = "X-Request-ID"
)

// forwardCredentials hands the caller's bearer token and request id to outgoing backend calls.
func forwardCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if token := api.ExtractBearerToken(r.Header.Get(AUTHORIZATION_HEADER)); token != "" {
			ctx = api.WithToken(ctx, token)
		}

		id := r.Header.Get(REQUEST_ID_HEADER)
		if id == "" {
			id = uuid.NewString()
		}
		ctx = api.WithRequestID(ctx, id)
		w.Header().Set(REQUEST_ID_HEADER, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[HTTP] %s %s %d %s id=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), api.RequestIDFrom(r.Context()))
	})
}

// requireCredentials turns away calls made on behalf of a user that forwarded no bearer token.
func requireCredentials(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := api.TokenFrom(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Unauthorized"}` + "\n"))
			return
		}
		next(w, r)
	})
}
