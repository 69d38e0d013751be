package price

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/http/render"
	"github.com/MrJamesThe3rd/folio/internal/pricing"
)

type Handler struct {
	svc *pricing.CachedService
}

func NewHandler(svc *pricing.CachedService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/{instrument}", h.get)
}

type closeDTO struct {
	Instrument string          `json:"instrument"`
	Date       string          `json:"date"`
	Close      decimal.Decimal `json:"close"`
	Source     string          `json:"source,omitempty"`
}

type recordResponse struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
}

// record stores closes pushed by the market-data collaborator. Closes already
// stored for a day are kept as they are.
func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req []closeDTO
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	closes := make([]pricing.Close, 0, len(req))

	for i, c := range req {
		date, err := calendar.Parse(c.Date)
		if err != nil {
			render.Error(w, r, fmt.Errorf("%w: close %d: %v", pricing.ErrInvalid, i, err))
			return
		}

		closes = append(closes, pricing.Close{Instrument: c.Instrument, Date: date, Price: c.Close, Source: c.Source})
	}

	n, err := h.svc.Record(r.Context(), closes)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, recordResponse{Received: len(closes), Inserted: n})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	date, err := render.DateParam(r, "date", calendar.Today())
	if err != nil {
		render.Error(w, r, err)
		return
	}

	c, err := h.svc.PriceOnOrBefore(r.Context(), chi.URLParam(r, "instrument"), date)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, closeDTO{
		Instrument: c.Instrument,
		Date:       calendar.Format(c.Date),
		Close:      c.Price,
		Source:     c.Source,
	})
}
