package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/http/cash"
	"github.com/MrJamesThe3rd/folio/internal/http/export"
	"github.com/MrJamesThe3rd/folio/internal/http/holding"
	"github.com/MrJamesThe3rd/folio/internal/http/importcsv"
	"github.com/MrJamesThe3rd/folio/internal/http/performance"
	"github.com/MrJamesThe3rd/folio/internal/http/price"
	"github.com/MrJamesThe3rd/folio/internal/http/symbol"
	"github.com/MrJamesThe3rd/folio/internal/http/transaction"
)

type Handlers struct {
	Holdings     *holding.Handler
	Transactions *transaction.Handler
	Cash         *cash.Handler
	Performance  *performance.Handler
	Prices       *price.Handler
	Import       *importcsv.Handler
	Symbols      *symbol.Handler
	Export       *export.Handler
}

type Options struct {
	AuthSecret  []byte
	CORSOrigins []string
	Timeout     time.Duration
	// RateLimit caps API requests per second across all clients; zero
	// disables the limiter.
	RateLimit float64
	RateBurst int
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(opts.Timeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.RateLimit > 0 {
		router.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.AuthSecret))

		r.Route("/holdings", func(r chi.Router) {
			r.With(middleware.AllowContentType("application/json")).Group(h.Holdings.Routes)
			r.Route("/{holdingID}/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Transactions.HoldingRoutes(r)
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/cash", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Cash.Routes(r)
		})

		r.Route("/performance", h.Performance.Routes)

		r.Route("/prices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Prices.Routes(r)
		})

		r.Route("/import", h.Import.Routes)
		r.Route("/symbols", h.Symbols.Routes)
		r.Route("/export", h.Export.Routes)
	})

	return router
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded", "path", r.URL.Path)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
