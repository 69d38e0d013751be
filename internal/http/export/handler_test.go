package export_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/folio/internal/export"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/folio/internal/http/export"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
	"github.com/MrJamesThe3rd/folio/internal/transaction"
)

var userID = uuid.MustParse("6d5c4b3a-2f1e-4d0c-9b8a-7f6e5d4c3b2a")

func day(n int) time.Time {
	return time.Date(2024, 7, n, 0, 0, 0, 0, time.UTC)
}

type noCloses struct{}

func (noCloses) PriceOnOrBefore(context.Context, string, time.Time) (*pricing.Close, error) {
	return nil, pricing.ErrNotFound
}

func newRouter(t *testing.T) chi.Router {
	ctrl := gomock.NewController(t)

	infy := &holding.Holding{ID: uuid.New(), UserID: userID, Symbol: "INFY"}
	txs := []*transaction.Transaction{
		{ID: uuid.New(), Seq: 1, HoldingID: infy.ID, Type: transaction.TypeBuy, Quantity: 10, Price: decimal.NewFromInt(100), Date: day(1)},
		{ID: uuid.New(), Seq: 2, HoldingID: infy.ID, Type: transaction.TypeSell, Quantity: 4, Price: decimal.NewFromInt(130), Date: day(3)},
	}

	holdings := holding.NewMockRepository(ctrl)
	holdings.EXPECT().ListHoldings(gomock.Any(), userID).Return([]*holding.Holding{infy}, nil).AnyTimes()

	txRepo := transaction.NewMockRepository(ctrl)
	txRepo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(txs, nil).AnyTimes()

	svc := export.NewService(holding.NewService(holdings), transaction.NewService(txRepo), noCloses{})

	r := chi.NewRouter()
	r.Route("/export", exportHandler.NewHandler(svc).Routes)

	return r
}

func get(r chi.Router, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(auth.WithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_LotsCSV(t *testing.T) {
	rec := get(newRouter(t), "/export/lots?end=2024-07-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "lots_20240710.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Date (Buy),Stock"))
	assert.Contains(t, lines[1], "2024-07-03,4,130,120.00")
	assert.True(t, strings.HasSuffix(lines[2], ",,,,"))
}

func TestHandler_LotsJSON(t *testing.T) {
	rec := get(newRouter(t), "/export/lots?end=2024-07-10&format=json")

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "130", rows[0]["sell_price"])
	assert.Equal(t, "120", rows[0]["realized"])
	assert.Nil(t, rows[0]["last_price"])

	_, sold := rows[1]["sell_price"]
	assert.False(t, sold)
	assert.EqualValues(t, 6, rows[1]["buy_quantity"])
}

func TestHandler_LotsBadParams(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, get(r, "/export/lots?end=10-07-2024").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/export/lots?window_days=week").Code)
}
