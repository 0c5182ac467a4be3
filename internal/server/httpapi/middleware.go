package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/ratelimiter"
	"github.com/dmitrijs2005/gophaccounts/internal/server/metrics"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestIDFromContext returns the id assigned by the request logger.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestLogger assigns a request id (reusing a client supplied one), logs
// the finished request and records it in metrics.
func requestLogger(logger logging.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > 128 {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))
			next.ServeHTTP(rr, r)

			elapsed := time.Since(start)
			route := r.Pattern
			if route == "" || route == "/" {
				route = "unmatched"
			}
			if m != nil {
				m.ObserveRequest(r.Method, route, rr.status, elapsed)
			}

			logger.Info(r.Context(), "request complete",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rr.status,
				"bytes", rr.size,
				"duration_ms", elapsed.Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"request_id", id,
			)
		})
	}
}

// recovery turns a handler panic into a 500. When the response has already
// started only the panic is logged.
func recovery(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rr, ok := w.(*responseRecorder)
			if !ok {
				rr = &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			}
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error(r.Context(), "handler panic",
						"panic", fmt.Sprint(rec), "request_id", RequestIDFromContext(r.Context()),
						"response_started", rr.wroteHeader)
					if !rr.wroteHeader {
						writeDetail(rr, http.StatusInternalServerError, detailInternal)
					}
				}
			}()
			next.ServeHTTP(rr, r)
		})
	}
}

// rateLimit keys buckets by client IP. It runs before authentication so
// bad tokens are limited too.
func rateLimit(l *ratelimiter.KeyedLimiter, m *metrics.Metrics, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r), now()) {
				if m != nil {
					m.RateLimited()
				}
				w.Header().Set("Retry-After", "1")
				writeDetail(w, http.StatusTooManyRequests, detailTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type responseRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (rr *responseRecorder) WriteHeader(code int) {
	if !rr.wroteHeader {
		rr.status = code
		rr.wroteHeader = true
	}
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	rr.wroteHeader = true
	n, err := rr.ResponseWriter.Write(b)
	rr.size += n
	return n, err
}

func (rr *responseRecorder) Unwrap() http.ResponseWriter { return rr.ResponseWriter }
