package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	folioHttp "github.com/MrJamesThe3rd/folio/internal/http"
	"github.com/MrJamesThe3rd/folio/internal/http/cash"
	"github.com/MrJamesThe3rd/folio/internal/http/export"
	"github.com/MrJamesThe3rd/folio/internal/http/holding"
	"github.com/MrJamesThe3rd/folio/internal/http/importcsv"
	"github.com/MrJamesThe3rd/folio/internal/http/performance"
	"github.com/MrJamesThe3rd/folio/internal/http/price"
	"github.com/MrJamesThe3rd/folio/internal/http/symbol"
	"github.com/MrJamesThe3rd/folio/internal/http/transaction"
)

func newRouter(opts folioHttp.Options) http.Handler {
	return folioHttp.New(folioHttp.Handlers{
		Holdings:     &holding.Handler{},
		Transactions: &transaction.Handler{},
		Cash:         &cash.Handler{},
		Performance:  &performance.Handler{},
		Prices:       &price.Handler{},
		Import:       &importcsv.Handler{},
		Symbols:      &symbol.Handler{},
		Export:       &export.Handler{},
	}, opts)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func TestRouter(t *testing.T) {
	h := newRouter(folioHttp.Options{AuthSecret: []byte("secret"), Timeout: time.Second})

	t.Run("health check is public", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, serve(h, http.MethodGet, "/healthz").Code)
	})

	t.Run("api requires a bearer token", func(t *testing.T) {
		for _, target := range []string{"/api/v1/holdings", "/api/v1/cash/balance", "/api/v1/export/lots"} {
			assert.Equal(t, http.StatusUnauthorized, serve(h, http.MethodGet, target).Code, target)
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/nope").Code)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	h := newRouter(folioHttp.Options{Timeout: time.Second, RateLimit: 0.001, RateBurst: 1})

	assert.Equal(t, http.StatusNoContent, serve(h, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodGet, "/healthz").Code)
}
