// Package httpapi exposes the account routes over HTTP.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/ratelimiter"
	"github.com/dmitrijs2005/gophaccounts/internal/server/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/metrics"
	"github.com/dmitrijs2005/gophaccounts/internal/server/principal"
)

const DefaultPrefix = "/users"

// Options configures NewRouter. Metrics and Limiter may be nil.
type Options struct {
	Prefix          string
	RequireVerified bool
	Service         *accounts.Service
	Resolver        *principal.Resolver
	Logger          logging.Logger
	Metrics         *metrics.Metrics
	Limiter         *ratelimiter.KeyedLimiter
	Now             func() time.Time
}

// NewRouter builds the full handler chain: request id, logging and metrics,
// panic recovery and rate limiting around the route mux.
func NewRouter(o Options) http.Handler {
	prefix := "/" + strings.Trim(o.Prefix, "/")
	if prefix == "/" {
		prefix = DefaultPrefix
	}
	if o.Logger == nil {
		o.Logger = logging.Nop{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}

	h := &handlers{
		service:  o.Service,
		resolver: o.Resolver,
		logger:   o.Logger.With("module", "httpapi"),
		self:     principal.Requirements{Active: true, Verified: o.RequireVerified},
		admin:    principal.Requirements{Active: true, Verified: o.RequireVerified, Superuser: true},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if o.Metrics != nil {
		mux.Handle("GET /metrics", o.Metrics.Handler())
	}

	mux.HandleFunc("GET "+prefix+"/me", h.getMe)
	mux.HandleFunc("PATCH "+prefix+"/me", h.patchMe)
	mux.HandleFunc("GET "+prefix+"/{id}", h.getAccount)
	mux.HandleFunc("PATCH "+prefix+"/{id}", h.patchAccount)
	mux.HandleFunc("DELETE "+prefix+"/{id}", h.deleteAccount)

	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, detailNotFound)
	})

	var handler http.Handler = mux
	handler = rateLimit(o.Limiter, o.Metrics, o.Now)(handler)
	handler = recovery(h.logger)(handler)
	handler = requestLogger(h.logger, o.Metrics)(handler)
	return handler
}
