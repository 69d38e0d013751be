package holding

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/folio/internal/calendar"
	"github.com/MrJamesThe3rd/folio/internal/holding"
	"github.com/MrJamesThe3rd/folio/internal/http/auth"
	"github.com/MrJamesThe3rd/folio/internal/http/render"
	"github.com/MrJamesThe3rd/folio/internal/lot"
	"github.com/MrJamesThe3rd/folio/internal/portfolio"
)

type Handler struct {
	holdings  *holding.Service
	portfolio *portfolio.Service
}

func NewHandler(holdings *holding.Service, portfolio *portfolio.Service) *Handler {
	return &Handler{holdings: holdings, portfolio: portfolio}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{holdingID}", h.get)
	r.Delete("/{holdingID}", h.delete)
	r.Get("/{holdingID}/matches", h.matches)
}

type holdingResponse struct {
	ID        uuid.UUID `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name,omitempty"`
	Exchange  string    `json:"exchange"`
	CreatedAt time.Time `json:"created_at"`
}

type lotResponse struct {
	BuyID     uuid.UUID       `json:"buy_transaction_id"`
	Date      string          `json:"date"`
	Quantity  int64           `json:"quantity"`
	Remaining int64           `json:"remaining"`
	Price     decimal.Decimal `json:"price"`
}

type saleResponse struct {
	SellID   uuid.UUID       `json:"sell_transaction_id"`
	Date     string          `json:"date"`
	Quantity int64           `json:"quantity"`
	Proceeds decimal.Decimal `json:"proceeds"`
	Cost     decimal.Decimal `json:"cost"`
	Realized decimal.Decimal `json:"realized"`
}

type detailResponse struct {
	holdingResponse
	OpenQuantity int64           `json:"open_quantity"`
	CostBasis    decimal.Decimal `json:"cost_basis"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	Realized     decimal.Decimal `json:"realized"`
	OpenLots     []lotResponse   `json:"open_lots"`
	Sales        []saleResponse  `json:"sales"`
	ComputedAt   time.Time       `json:"computed_at"`
}

type matchResponse struct {
	SellID    uuid.UUID       `json:"sell_transaction_id"`
	BuyID     uuid.UUID       `json:"buy_transaction_id"`
	Quantity  int64           `json:"quantity"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Realized  decimal.Decimal `json:"realized"`
	BuyDate   string          `json:"buy_date"`
	SellDate  string          `json:"sell_date"`
}

func toResponse(h *holding.Holding) holdingResponse {
	return holdingResponse{
		ID:        h.ID,
		Symbol:    h.Symbol,
		Name:      h.Name,
		Exchange:  h.Exchange,
		CreatedAt: h.CreatedAt,
	}
}

func toDetail(h *holding.Holding, sum *portfolio.Summary) detailResponse {
	resp := detailResponse{
		holdingResponse: toResponse(h),
		OpenQuantity:    sum.OpenQuantity,
		CostBasis:       sum.CostBasis,
		AverageCost:     sum.AverageCost.Round(6),
		Realized:        sum.Realized,
		OpenLots:        make([]lotResponse, 0, len(sum.Open)),
		Sales:           make([]saleResponse, 0, len(sum.Sales)),
		ComputedAt:      sum.ComputedAt,
	}

	for _, l := range sum.Open {
		resp.OpenLots = append(resp.OpenLots, lotResponse{
			BuyID: l.BuyID, Date: calendar.Format(l.Date), Quantity: l.Quantity, Remaining: l.Remaining, Price: l.Price,
		})
	}

	for _, s := range sum.Sales {
		resp.Sales = append(resp.Sales, saleResponse{
			SellID: s.SellID, Date: calendar.Format(s.Date), Quantity: s.Quantity,
			Proceeds: s.Proceeds, Cost: s.Cost, Realized: s.Realized,
		})
	}

	return resp
}

type createHoldingRequest struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createHoldingRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	created, err := h.holdings.Create(r.Context(), holding.CreateParams{
		UserID:   auth.UserID(r.Context()),
		Symbol:   req.Symbol,
		Name:     req.Name,
		Exchange: req.Exchange,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdings.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		render.Error(w, r, err)
		return
	}

	resp := make([]holdingResponse, len(holdings))
	for i, hd := range holdings {
		resp[i] = toResponse(hd)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := holdingID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	hd, err := h.holdings.GetOwned(r.Context(), userID, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	sum, err := h.portfolio.Summary(r.Context(), userID, id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toDetail(hd, sum))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := holdingID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	if err := h.portfolio.DeleteHolding(r.Context(), auth.UserID(r.Context()), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) matches(w http.ResponseWriter, r *http.Request) {
	id, err := holdingID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	matches, err := h.portfolio.Matches(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, toMatchList(matches))
}

func toMatchList(matches []lot.Match) []matchResponse {
	resp := make([]matchResponse, len(matches))
	for i, m := range matches {
		resp[i] = matchResponse{
			SellID:    m.SellID,
			BuyID:     m.BuyID,
			Quantity:  m.Quantity,
			BuyPrice:  m.BuyPrice,
			SellPrice: m.SellPrice,
			Realized:  m.Realized,
			BuyDate:   calendar.Format(m.BuyDate),
			SellDate:  calendar.Format(m.SellDate),
		}
	}

	return resp
}

func holdingID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "holdingID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid holding id", render.ErrBadRequest)
	}

	return id, nil
}
