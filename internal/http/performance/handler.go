package performance

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/http/render"
	"github.com/MrJamesThe3rd/folio/internal/performance"
)

type Handler struct {
	svc *performance.Service
}

func NewHandler(svc *performance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/gain", h.gain)
	r.Get("/valuation", h.valuation)
	r.Get("/series", h.series)
}

type unvaluedResponse struct {
	HoldingID  uuid.UUID `json:"holding_id"`
	Instrument string    `json:"instrument"`
	Date       string    `json:"date"`
}

type positionResponse struct {
	HoldingID  uuid.UUID           `json:"holding_id"`
	Instrument string              `json:"instrument"`
	Quantity   int64               `json:"quantity"`
	Price      decimal.NullDecimal `json:"price"`
	PriceDate  string              `json:"price_date,omitempty"`
	Value      decimal.NullDecimal `json:"value"`
}

type valuationResponse struct {
	Date      string              `json:"date"`
	Holdings  decimal.NullDecimal `json:"holdings"`
	Cash      decimal.Decimal     `json:"cash"`
	Total     decimal.NullDecimal `json:"total"`
	Positions []positionResponse  `json:"positions"`
	Unvalued  []unvaluedResponse  `json:"unvalued"`
}

type gainResponse struct {
	Timeframe   performance.Timeframe `json:"timeframe,omitempty"`
	Start       string                `json:"start"`
	End         string                `json:"end"`
	StartValue  valuationResponse     `json:"start_value"`
	EndValue    valuationResponse     `json:"end_value"`
	NetCashFlow decimal.Decimal       `json:"net_cash_flow"`
	Gain        decimal.NullDecimal   `json:"gain"`
	GainPercent decimal.NullDecimal   `json:"gain_percent"`
	Unvalued    []unvaluedResponse    `json:"unvalued"`
}

type pointResponse struct {
	Date     string              `json:"date"`
	Holdings decimal.NullDecimal `json:"holdings"`
	Cash     decimal.Decimal     `json:"cash"`
	Total    decimal.NullDecimal `json:"total"`
}

func toUnvalued(us []performance.Unvalued) []unvaluedResponse {
	resp := make([]unvaluedResponse, len(us))
	for i, u := range us {
		resp[i] = unvaluedResponse{HoldingID: u.HoldingID, Instrument: u.Instrument, Date: calendar.Format(u.Date)}
	}

	return resp
}

func toValuation(v *performance.Valuation) valuationResponse {
	resp := valuationResponse{
		Date:      calendar.Format(v.Date),
		Holdings:  v.Holdings,
		Cash:      v.Cash,
		Total:     v.Total,
		Positions: make([]positionResponse, len(v.Positions)),
		Unvalued:  toUnvalued(v.Unvalued),
	}

	for i, p := range v.Positions {
		resp.Positions[i] = positionResponse{
			HoldingID:  p.HoldingID,
			Instrument: p.Instrument,
			Quantity:   p.Quantity,
			Price:      p.Price,
			Value:      p.Value,
		}

		if !p.PriceDate.IsZero() {
			resp.Positions[i].PriceDate = calendar.Format(p.PriceDate)
		}
	}

	return resp
}

func toGain(g *performance.Gain) gainResponse {
	resp := gainResponse{
		Timeframe:   g.Timeframe,
		Start:       calendar.Format(g.Start),
		End:         calendar.Format(g.End),
		StartValue:  toValuation(g.ValuationStart),
		EndValue:    toValuation(g.ValuationEnd),
		NetCashFlow: g.NetCashFlow,
		Gain:        g.Amount,
		GainPercent: g.Percent,
		Unvalued:    toUnvalued(g.Unvalued),
	}

	if resp.GainPercent.Valid {
		resp.GainPercent.Decimal = resp.GainPercent.Decimal.Round(4)
	}

	return resp
}

// gain serves either ?timeframe=&end= or an explicit ?start=&end= window.
func (h *Handler) gain(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	end, err := render.DateParam(r, "end", calendar.Today())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var g *performance.Gain

	if tf := r.URL.Query().Get("timeframe"); tf != "" {
		timeframe, err := performance.ParseTimeframe(tf)
		if err != nil {
			render.Error(w, r, err)
			return
		}

		g, err = h.svc.WindowedGain(r.Context(), userID, timeframe, end)
		if err != nil {
			render.Error(w, r, err)
			return
		}
	} else {
		start, err := render.DateParam(r, "start", time.Time{})
		if err != nil {
			render.Error(w, r, err)
			return
		}

		if start.IsZero() {
			render.Error(w, r, fmt.Errorf("%w: timeframe or start is required", render.ErrBadRequest))
			return
		}

		g, err = h.svc.Gain(r.Context(), userID, start, end)
		if err != nil {
			render.Error(w, r, err)
			return
		}
	}

	render.JSON(w, http.StatusOK, toGain(g))
}

func (h *Handler) valuation(w http.ResponseWriter, r *http.Request) {
	date, err := render.DateParam(r, "date", calendar.Today())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	v, err := h.svc.Valuation(r.Context(), auth.UserID(r.Context()), date)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toValuation(v))
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	to, err := render.DateParam(r, "to", calendar.Today())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	from, err := render.DateParam(r, "from", calendar.AddDays(to, -30))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	points, err := h.svc.Series(r.Context(), auth.UserID(r.Context()), from, to)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]pointResponse, len(points))
	for i, p := range points {
		resp[i] = pointResponse{Date: calendar.Format(p.Date), Holdings: p.Holdings, Cash: p.Cash, Total: p.Total}
	}

	render.JSON(w, http.StatusOK, resp)
}
