package export

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/export"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/http/render"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/lots", h.lots)
}

type rowResponse struct {
	Symbol       string              `json:"symbol"`
	BuyDate      string              `json:"buy_date"`
	BuyQuantity  int64               `json:"buy_quantity"`
	BuyPrice     decimal.Decimal     `json:"buy_price"`
	SellDate     string              `json:"sell_date,omitempty"`
	SellQuantity int64               `json:"sell_quantity,omitempty"`
	SellPrice    *decimal.Decimal    `json:"sell_price,omitempty"`
	Realized     *decimal.Decimal    `json:"realized,omitempty"`
	LastPrice    decimal.NullDecimal `json:"last_price"`
}

// lots serves the reconciliation as CSV by default, or JSON with
// ?format=json.
func (h *Handler) lots(w http.ResponseWriter, r *http.Request) {
	end, err := render.DateParam(r, "end", calendar.Today())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	window, err := render.IntParam(r, "window_days", 0)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	rows, err := h.svc.Lots(r.Context(), auth.UserID(r.Context()), export.Options{End: end, WindowDays: window})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		render.JSON(w, http.StatusOK, toRows(rows))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="lots_%s.csv"`, end.Format("20060102")))

	if err := export.WriteCSV(w, rows); err != nil {
		slog.Error("failed to write lots csv", "error", err)
	}
}

func toRows(rows []export.Row) []rowResponse {
	resp := make([]rowResponse, len(rows))

	for i, row := range rows {
		rr := rowResponse{
			Symbol:      row.Symbol,
			BuyDate:     calendar.Format(row.BuyDate),
			BuyQuantity: row.BuyQuantity,
			BuyPrice:    row.BuyPrice,
			LastPrice:   row.LastPrice,
		}

		if !row.Open() {
			rr.SellDate = calendar.Format(row.SellDate)
			rr.SellQuantity = row.SellQuantity
			rr.SellPrice = &row.SellPrice
			rr.Realized = &row.Realized
		}

		resp[i] = rr
	}

	return resp
}
